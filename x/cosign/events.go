package cosign

import (
	"math"
	"strconv"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/orm"
	"github.com/tendermint/tendermint/libs/common"
)

// Tag keys attached to the deliver result. Tendermint clients can subscribe
// to the registry events using them, for example
// "cosign.event='DocumentCompleted'".
const (
	TagEvent    = "cosign.event"
	TagRegistry = "cosign.registry"
	TagDocument = "cosign.document"
)

// eventLog appends events to the registry event log. Each appended event is
// also described by a set of tags that the handler returns with its result.
type eventLog struct {
	bucket orm.ModelBucket
	tags   []common.KVPair
}

func newEventLog(b orm.ModelBucket) *eventLog {
	return &eventLog{bucket: b}
}

// Emit stores the event under the next sequence value of the registry. The
// registry counter is incremented but the registry is not saved. The caller
// must save it within the same transaction.
func (l *eventLog) Emit(ctx weave.Context, db weave.KVStore, reg *Registry, registryID weave.Address, e *Event) error {
	if reg.EventCount == math.MaxUint64 {
		return errors.Wrapf(ErrCounterOverflow, "registry %s events", registryID)
	}
	height, ok := weave.GetHeight(ctx)
	if !ok {
		return errors.Wrap(errors.ErrState, "block height not present in context")
	}
	e.Metadata = &weave.Metadata{Schema: 1}
	e.RegistryID = registryID
	e.Height = height

	key := EventKey(registryID, reg.EventCount)
	if _, err := l.bucket.Put(db, key, e); err != nil {
		return errors.Wrapf(err, "cannot store %s event", e.Kind)
	}
	reg.EventCount++

	l.tags = append(l.tags, common.KVPair{Key: []byte(TagEvent), Value: []byte(e.Kind.String())})
	if e.Kind != EventKindOwnershipTransferred {
		l.tags = append(l.tags, common.KVPair{
			Key:   []byte(TagDocument),
			Value: []byte(strconv.FormatUint(e.DocumentID, 10)),
		})
	}
	return nil
}

// Result returns the deliver result carrying the tags of all emitted
// events, preceded by the registry tag.
func (l *eventLog) Result(registryID weave.Address, data []byte) *weave.DeliverResult {
	tags := make([]common.KVPair, 0, len(l.tags)+1)
	tags = append(tags, common.KVPair{Key: []byte(TagRegistry), Value: []byte(registryID.String())})
	tags = append(tags, l.tags...)
	return &weave.DeliverResult{Data: data, Tags: tags}
}
