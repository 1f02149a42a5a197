package cosign

import (
	"context"
	"math"
	"testing"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/store"
	"github.com/iov-one/weave/weavetest"
	"github.com/iov-one/weave/weavetest/assert"
)

func TestEventLogEmit(t *testing.T) {
	registryID := weavetest.NewCondition().Address()
	alice := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Ctx        weave.Context
		EventCount uint64
		WantErr    *errors.Error
	}{
		"event is stored under the next sequence": {
			Ctx:        weave.WithHeight(context.Background(), 7),
			EventCount: 3,
		},
		"event counter overflow": {
			Ctx:        weave.WithHeight(context.Background(), 7),
			EventCount: math.MaxUint64,
			WantErr:    ErrCounterOverflow,
		},
		"block height is required": {
			Ctx:        context.Background(),
			EventCount: 3,
			WantErr:    errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			reg := &Registry{
				Metadata:   &weave.Metadata{Schema: 1},
				Owner:      registryID,
				EventCount: tc.EventCount,
			}
			log := newEventLog(NewEventBucket())
			err := log.Emit(tc.Ctx, db, reg, registryID, &Event{
				Kind:       EventKindDocumentSigned,
				DocumentID: 2,
				Signer:     alice,
			})
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			var stored Event
			lookupErr := NewEventBucket().One(db, EventKey(registryID, tc.EventCount), &stored)
			if tc.WantErr != nil {
				assert.Equal(t, tc.EventCount, reg.EventCount)
				if !errors.ErrNotFound.Is(lookupErr) {
					t.Fatalf("no event must be stored: %+v", lookupErr)
				}
				assert.Equal(t, 0, len(log.tags))
				return
			}

			assert.Nil(t, lookupErr)
			assert.Equal(t, tc.EventCount+1, reg.EventCount)
			assert.Equal(t, int64(7), stored.Height)
			assert.Equal(t, registryID, stored.RegistryID)
			assert.Equal(t, alice, stored.Signer)
			assert.Equal(t, 2, len(log.tags))
		})
	}
}
