package cosign

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/orm"
	"github.com/iov-one/weave/x"
)

const (
	createRegistryCost    int64 = 100
	createDocumentCost    int64 = 200
	signDocumentCost      int64 = 100
	updateDocumentCost    int64 = 50
	transferOwnershipCost int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r weave.Registry, auth x.Authenticator) {
	r = migration.SchemaMigratingRegistry(packageName, r)
	b := newBuckets()

	r.Handle(&CreateRegistryMsg{}, &createRegistryHandler{auth: auth, b: b})
	r.Handle(&CreateDocumentMsg{}, &createDocumentHandler{auth: auth, b: b})
	r.Handle(&SignDocumentMsg{}, &signDocumentHandler{auth: auth, b: b})
	r.Handle(&UpdateDocumentMsg{}, &updateDocumentHandler{auth: auth, b: b})
	r.Handle(&TransferOwnershipMsg{}, &transferOwnershipHandler{auth: auth, b: b})
	r.Handle(&UpdateConfigurationMsg{}, NewConfigHandler(auth))
}

// RegisterQuery registers all buckets of this package under the /cosign
// prefix.
func RegisterQuery(qr weave.QueryRouter) {
	b := newBuckets()
	b.registries.Register("cosign/registries", qr)
	b.documents.Register("cosign/documents", qr)
	b.signatures.Register("cosign/signatures", qr)
	b.events.Register("cosign/events", qr)
}

type buckets struct {
	registries orm.ModelBucket
	documents  orm.ModelBucket
	signatures orm.ModelBucket
	events     orm.ModelBucket
}

func newBuckets() *buckets {
	return &buckets{
		registries: NewRegistryBucket(),
		documents:  NewDocumentBucket(),
		signatures: NewSignatureBucket(),
		events:     NewEventBucket(),
	}
}

// signer returns the address of the main signer of the transaction.
func signer(ctx weave.Context, auth x.Authenticator) (weave.Address, error) {
	cond := x.MainSigner(ctx, auth)
	if cond == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return cond.Address(), nil
}

func (b *buckets) registry(db weave.ReadOnlyKVStore, id weave.Address) (*Registry, error) {
	var reg Registry
	if err := b.registries.One(db, id, &reg); err != nil {
		return nil, errors.Wrapf(err, "registry %s", id)
	}
	return &reg, nil
}

func (b *buckets) document(db weave.ReadOnlyKVStore, registryID weave.Address, id uint64) (*Document, error) {
	var doc Document
	switch err := b.documents.One(db, DocumentKey(registryID, id), &doc); {
	case err == nil:
		return &doc, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrDocumentNotFound, "document %d", id)
	default:
		return nil, errors.Wrap(err, "cannot load document")
	}
}

// documentSignatures returns all signatures of a document in the order they
// were submitted. No signatures is not an error.
func (b *buckets) documentSignatures(db weave.ReadOnlyKVStore, registryID weave.Address, id uint64) ([]*Signature, error) {
	var sigs []*Signature
	_, err := b.signatures.ByIndex(db, indexDocument, DocumentKey(registryID, id), &sigs)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return nil, errors.Wrap(err, "cannot load signatures")
	}
	return sigs, nil
}

type createRegistryHandler struct {
	auth x.Authenticator
	b    *buckets
}

var _ weave.Handler = (*createRegistryHandler)(nil)

func (h *createRegistryHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createRegistryCost}, nil
}

func (h *createRegistryHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	reg := Registry{
		Metadata: &weave.Metadata{Schema: 1},
		Owner:    caller,
	}
	if _, err := h.b.registries.Put(db, caller, &reg); err != nil {
		return nil, errors.Wrap(err, "cannot store registry")
	}
	return &weave.DeliverResult{Data: caller}, nil
}

func (h *createRegistryHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (weave.Address, error) {
	var msg CreateRegistryMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	switch _, err := h.b.registry(db, caller); {
	case err == nil:
		return nil, errors.Wrapf(ErrAlreadyInitialized, "registry %s", caller)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	return caller, nil
}

type createDocumentHandler struct {
	auth x.Authenticator
	b    *buckets
}

var _ weave.Handler = (*createDocumentHandler)(nil)

func (h *createDocumentHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createDocumentCost}, nil
}

func (h *createDocumentHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, reg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	id := reg.DocumentCount
	reg.DocumentCount++
	doc := Document{
		Metadata:    &weave.Metadata{Schema: 1},
		RegistryID:  msg.RegistryID,
		ID:          id,
		Title:       msg.Title,
		Description: msg.Description,
		FileHash:    msg.FileHash,
		Signers:     msg.Signers,
		Creator:     caller,
	}
	if _, err := h.b.documents.Put(db, DocumentKey(msg.RegistryID, id), &doc); err != nil {
		return nil, errors.Wrap(err, "cannot store document")
	}

	events := newEventLog(h.b.events)
	err = events.Emit(ctx, db, reg, msg.RegistryID, &Event{
		Kind:       EventKindDocumentCreated,
		DocumentID: id,
		Title:      doc.Title,
		Signers:    doc.Signers,
		Creator:    caller,
	})
	if err != nil {
		return nil, err
	}
	if _, err := h.b.registries.Put(db, msg.RegistryID, reg); err != nil {
		return nil, errors.Wrap(err, "cannot store registry")
	}

	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, id)
	return events.Result(msg.RegistryID, data), nil
}

func (h *createDocumentHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*CreateDocumentMsg, *Registry, weave.Address, error) {
	var msg CreateDocumentMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}
	reg, err := h.b.registry(db, msg.RegistryID)
	if err != nil {
		return nil, nil, nil, err
	}

	if len(msg.Signers) == 0 {
		return nil, nil, nil, errors.Wrap(errors.ErrInput, "signers required")
	}
	if msg.Title == "" {
		return nil, nil, nil, errors.Wrap(errors.ErrInput, "title required")
	}
	if msg.FileHash == "" {
		return nil, nil, nil, errors.Wrap(errors.ErrInput, "file hash required")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := conf.checkLimits(msg.Title, msg.Description, len(msg.Signers)); err != nil {
		return nil, nil, nil, err
	}

	if reg.DocumentCount == math.MaxUint64 {
		return nil, nil, nil, errors.Wrapf(ErrCounterOverflow, "registry %s", msg.RegistryID)
	}
	return &msg, reg, caller, nil
}

type signDocumentHandler struct {
	auth x.Authenticator
	b    *buckets
}

var _ weave.Handler = (*signDocumentHandler)(nil)

func (h *signDocumentHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: signDocumentCost}, nil
}

func (h *signDocumentHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := weave.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	reg, err := h.b.registry(db, s.msg.RegistryID)
	if err != nil {
		return nil, err
	}

	sig := Signature{
		Metadata:   &weave.Metadata{Schema: 1},
		RegistryID: s.msg.RegistryID,
		DocumentID: s.doc.ID,
		Signer:     s.caller,
		Signature:  s.msg.Signature,
		SignedAt:   weave.AsUnixTime(now),
	}
	docKey := DocumentKey(s.msg.RegistryID, s.doc.ID)
	key := SignatureKey(docKey, uint32(len(s.sigs)))
	if _, err := h.b.signatures.Put(db, key, &sig); err != nil {
		return nil, errors.Wrap(err, "cannot store signature")
	}

	events := newEventLog(h.b.events)
	err = events.Emit(ctx, db, reg, s.msg.RegistryID, &Event{
		Kind:       EventKindDocumentSigned,
		DocumentID: s.doc.ID,
		Signer:     s.caller,
	})
	if err != nil {
		return nil, err
	}

	if allSigned(s.doc.Signers, append(s.sigs, &sig)) {
		s.doc.Completed = true
		s.doc.FinalHash = sig.Signature
		if _, err := h.b.documents.Put(db, docKey, s.doc); err != nil {
			return nil, errors.Wrap(err, "cannot store document")
		}
		err := events.Emit(ctx, db, reg, s.msg.RegistryID, &Event{
			Kind:       EventKindDocumentCompleted,
			DocumentID: s.doc.ID,
			FinalHash:  s.doc.FinalHash,
		})
		if err != nil {
			return nil, err
		}
		weave.GetLogger(ctx).Info("document completed",
			"registry", s.msg.RegistryID,
			"document", s.doc.ID,
			"signatures", len(s.sigs)+1)
	}

	if _, err := h.b.registries.Put(db, s.msg.RegistryID, reg); err != nil {
		return nil, errors.Wrap(err, "cannot store registry")
	}
	return events.Result(s.msg.RegistryID, docKey), nil
}

type signRequest struct {
	msg    *SignDocumentMsg
	doc    *Document
	sigs   []*Signature
	caller weave.Address
}

func (h *signDocumentHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*signRequest, error) {
	var msg SignDocumentMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	doc, err := h.b.document(db, msg.RegistryID, msg.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.Completed {
		return nil, errors.Wrapf(ErrDocumentCompleted, "document %d", doc.ID)
	}
	if !doc.HasSigner(caller) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not a required signer")
	}
	sigs, err := h.b.documentSignatures(db, msg.RegistryID, doc.ID)
	if err != nil {
		return nil, err
	}
	for _, s := range sigs {
		if s.Signer.Equals(caller) {
			return nil, errors.Wrapf(ErrAlreadySigned, "signed at %s", s.SignedAt)
		}
	}
	if msg.Signature == "" {
		return nil, errors.Wrap(errors.ErrInput, "signature required")
	}
	return &signRequest{msg: &msg, doc: doc, sigs: sigs, caller: caller}, nil
}

// allSigned returns true if each of the required signers has submitted a
// signature.
func allSigned(required []weave.Address, sigs []*Signature) bool {
	for _, r := range required {
		var found bool
		for _, s := range sigs {
			if s.Signer.Equals(r) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type updateDocumentHandler struct {
	auth x.Authenticator
	b    *buckets
}

var _ weave.Handler = (*updateDocumentHandler)(nil)

func (h *updateDocumentHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: updateDocumentCost}, nil
}

func (h *updateDocumentHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, doc, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	doc.Title = msg.Title
	doc.Description = msg.Description
	key := DocumentKey(msg.RegistryID, doc.ID)
	if _, err := h.b.documents.Put(db, key, doc); err != nil {
		return nil, errors.Wrap(err, "cannot store document")
	}
	return &weave.DeliverResult{Data: key}, nil
}

func (h *updateDocumentHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*UpdateDocumentMsg, *Document, error) {
	var msg UpdateDocumentMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	doc, err := h.b.document(db, msg.RegistryID, msg.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	if !doc.Creator.Equals(caller) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the creator can update a document")
	}
	if doc.Completed {
		return nil, nil, errors.Wrapf(ErrDocumentCompleted, "document %d", doc.ID)
	}
	sigs, err := h.b.documentSignatures(db, msg.RegistryID, doc.ID)
	if err != nil {
		return nil, nil, err
	}
	if len(sigs) != 0 {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "document already has signatures")
	}
	if msg.Title == "" {
		return nil, nil, errors.Wrap(errors.ErrInput, "title required")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if err := conf.checkLimits(msg.Title, msg.Description, len(doc.Signers)); err != nil {
		return nil, nil, err
	}
	return &msg, doc, nil
}

type transferOwnershipHandler struct {
	auth x.Authenticator
	b    *buckets
}

var _ weave.Handler = (*transferOwnershipHandler)(nil)

func (h *transferOwnershipHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: transferOwnershipCost}, nil
}

func (h *transferOwnershipHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, reg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	previous := reg.Owner
	reg.Owner = msg.NewOwner

	events := newEventLog(h.b.events)
	err = events.Emit(ctx, db, reg, msg.RegistryID, &Event{
		Kind:          EventKindOwnershipTransferred,
		PreviousOwner: previous,
		NewOwner:      msg.NewOwner,
	})
	if err != nil {
		return nil, err
	}
	if _, err := h.b.registries.Put(db, msg.RegistryID, reg); err != nil {
		return nil, errors.Wrap(err, "cannot store registry")
	}
	weave.GetLogger(ctx).Info("registry ownership transferred",
		"registry", msg.RegistryID,
		"from", previous,
		"to", msg.NewOwner)
	return events.Result(msg.RegistryID, nil), nil
}

func (h *transferOwnershipHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*TransferOwnershipMsg, *Registry, error) {
	var msg TransferOwnershipMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	reg, err := h.b.registry(db, msg.RegistryID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, reg.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	if reg.Owner.Equals(msg.NewOwner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "new owner is the current owner")
	}
	return &msg, reg, nil
}
