package cosign

import (
	"encoding/binary"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/orm"
)

const packageName = "cosign"

func init() {
	migration.MustRegister(1, &Registry{}, migration.NoModification)
	migration.MustRegister(1, &Document{}, migration.NoModification)
	migration.MustRegister(1, &Signature{}, migration.NoModification)
	migration.MustRegister(1, &Event{}, migration.NoModification)
	migration.MustRegister(1, &Configuration{}, migration.NoModification)
}

var _ orm.Model = (*Registry)(nil)

// Validate ensures the registry is valid.
func (r *Registry) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", r.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", r.Owner.Validate())
	if r.EventCount < r.DocumentCount {
		// Every created document emits at least one event.
		errs = errors.AppendField(errs, "EventCount",
			errors.Wrap(errors.ErrState, "less than document count"))
	}
	return errs
}

// Copy returns a deep copy of the registry.
func (r *Registry) Copy() orm.CloneableData {
	return &Registry{
		Metadata:      r.Metadata.Copy(),
		Owner:         cloneAddress(r.Owner),
		DocumentCount: r.DocumentCount,
		EventCount:    r.EventCount,
	}
}

var _ orm.Model = (*Document)(nil)

// Validate ensures the document is valid. A completed document must carry
// the final hash and a document that is not completed must not.
func (d *Document) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", d.Metadata.Validate())
	errs = errors.AppendField(errs, "RegistryID", d.RegistryID.Validate())
	if d.Title == "" {
		errs = errors.AppendField(errs, "Title", errors.ErrEmpty)
	}
	if d.FileHash == "" {
		errs = errors.AppendField(errs, "FileHash", errors.ErrEmpty)
	}
	if len(d.Signers) == 0 {
		errs = errors.AppendField(errs, "Signers", errors.ErrEmpty)
	}
	for i, s := range d.Signers {
		if err := s.Validate(); err != nil {
			errs = errors.AppendField(errs, "Signers", errors.Wrapf(err, "signer %d", i))
		}
	}
	errs = errors.AppendField(errs, "Creator", d.Creator.Validate())
	switch {
	case d.Completed && d.FinalHash == "":
		errs = errors.AppendField(errs, "FinalHash",
			errors.Wrap(errors.ErrState, "required for a completed document"))
	case !d.Completed && d.FinalHash != "":
		errs = errors.AppendField(errs, "FinalHash",
			errors.Wrap(errors.ErrState, "must be empty until completed"))
	}
	return errs
}

// Copy returns a deep copy of the document.
func (d *Document) Copy() orm.CloneableData {
	signers := make([]weave.Address, len(d.Signers))
	for i, s := range d.Signers {
		signers[i] = cloneAddress(s)
	}
	return &Document{
		Metadata:    d.Metadata.Copy(),
		RegistryID:  cloneAddress(d.RegistryID),
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		FileHash:    d.FileHash,
		FinalHash:   d.FinalHash,
		Signers:     signers,
		Creator:     cloneAddress(d.Creator),
		Completed:   d.Completed,
	}
}

// HasSigner returns true if given address is one of the required signers.
func (d *Document) HasSigner(addr weave.Address) bool {
	for _, s := range d.Signers {
		if s.Equals(addr) {
			return true
		}
	}
	return false
}

var _ orm.Model = (*Signature)(nil)

// Validate ensures the signature is valid.
func (s *Signature) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.AppendField(errs, "RegistryID", s.RegistryID.Validate())
	errs = errors.AppendField(errs, "Signer", s.Signer.Validate())
	if s.Signature == "" {
		errs = errors.AppendField(errs, "Signature", errors.ErrEmpty)
	}
	if s.SignedAt == 0 {
		errs = errors.AppendField(errs, "SignedAt", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "SignedAt", s.SignedAt.Validate())
	}
	return errs
}

// Copy returns a deep copy of the signature.
func (s *Signature) Copy() orm.CloneableData {
	return &Signature{
		Metadata:   s.Metadata.Copy(),
		RegistryID: cloneAddress(s.RegistryID),
		DocumentID: s.DocumentID,
		Signer:     cloneAddress(s.Signer),
		Signature:  s.Signature,
		SignedAt:   s.SignedAt,
	}
}

var _ orm.Model = (*Event)(nil)

// Validate ensures the event is valid.
func (e *Event) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	errs = errors.AppendField(errs, "RegistryID", e.RegistryID.Validate())
	switch e.Kind {
	case EventKindDocumentCreated:
		errs = errors.AppendField(errs, "Creator", e.Creator.Validate())
	case EventKindDocumentSigned:
		errs = errors.AppendField(errs, "Signer", e.Signer.Validate())
	case EventKindDocumentCompleted:
		if e.FinalHash == "" {
			errs = errors.AppendField(errs, "FinalHash", errors.ErrEmpty)
		}
	case EventKindOwnershipTransferred:
		errs = errors.AppendField(errs, "PreviousOwner", e.PreviousOwner.Validate())
		errs = errors.AppendField(errs, "NewOwner", e.NewOwner.Validate())
	default:
		errs = errors.AppendField(errs, "Kind", errors.Wrapf(errors.ErrInput, "unknown kind %d", e.Kind))
	}
	return errs
}

// Copy returns a deep copy of the event.
func (e *Event) Copy() orm.CloneableData {
	signers := make([]weave.Address, len(e.Signers))
	for i, s := range e.Signers {
		signers[i] = cloneAddress(s)
	}
	return &Event{
		Metadata:      e.Metadata.Copy(),
		RegistryID:    cloneAddress(e.RegistryID),
		Kind:          e.Kind,
		DocumentID:    e.DocumentID,
		Title:         e.Title,
		Signers:       signers,
		Creator:       cloneAddress(e.Creator),
		Signer:        cloneAddress(e.Signer),
		FinalHash:     e.FinalHash,
		PreviousOwner: cloneAddress(e.PreviousOwner),
		NewOwner:      cloneAddress(e.NewOwner),
		Height:        e.Height,
	}
}

// NewRegistryBucket returns a bucket holding registries, keyed by the
// address of the identity that initialized them.
func NewRegistryBucket() orm.ModelBucket {
	b := orm.NewModelBucket("registry", &Registry{})
	return migration.NewModelBucket(packageName, b)
}

const (
	indexCreator   = "creator"
	indexSigner    = "signer"
	indexDocSigner = "docsigner"
	indexDocument  = "document"
)

// NewDocumentBucket returns a bucket holding documents. Use DocumentKey to
// build the key of a document.
func NewDocumentBucket() orm.ModelBucket {
	b := orm.NewModelBucket("document", &Document{},
		orm.WithIndex(indexCreator, idxCreator, false),
	)
	return migration.NewModelBucket(packageName, b)
}

// NewSignatureBucket returns a bucket holding signatures. Keys are built
// using SignatureKey so that iterating over a document signatures returns
// them in the order they were submitted.
func NewSignatureBucket() orm.ModelBucket {
	b := orm.NewModelBucket("signature", &Signature{},
		orm.WithIndex(indexDocument, idxSignatureDocument, false),
		orm.WithIndex(indexDocSigner, idxSignatureDocSigner, true),
		orm.WithIndex(indexSigner, idxSignatureSigner, false),
	)
	return migration.NewModelBucket(packageName, b)
}

// NewEventBucket returns a bucket holding the event log.
func NewEventBucket() orm.ModelBucket {
	b := orm.NewModelBucket("event", &Event{},
		orm.WithIndex(indexDocument, idxEventDocument, false),
	)
	return migration.NewModelBucket(packageName, b)
}

// DocumentKey returns the database key of a document within a registry.
func DocumentKey(registryID weave.Address, id uint64) []byte {
	key := make([]byte, len(registryID)+8)
	copy(key, registryID)
	binary.BigEndian.PutUint64(key[len(registryID):], id)
	return key
}

// SignatureKey returns the database key of the signature submitted at given
// position (counting from zero) of a document.
func SignatureKey(documentKey []byte, position uint32) []byte {
	key := make([]byte, len(documentKey)+4)
	copy(key, documentKey)
	binary.BigEndian.PutUint32(key[len(documentKey):], position)
	return key
}

// EventKey returns the database key of the n-th event of a registry.
func EventKey(registryID weave.Address, n uint64) []byte {
	return DocumentKey(registryID, n)
}

// UserIndexKey returns the index value used to find documents created or
// signed by given user within a registry.
func UserIndexKey(registryID, user weave.Address) []byte {
	key := make([]byte, 0, len(registryID)+len(user))
	key = append(key, registryID...)
	return append(key, user...)
}

func idxCreator(obj orm.Object) ([]byte, error) {
	d, ok := obj.Value().(*Document)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return UserIndexKey(d.RegistryID, d.Creator), nil
}

func asSignature(obj orm.Object) (*Signature, error) {
	s, ok := obj.Value().(*Signature)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return s, nil
}

func idxSignatureDocument(obj orm.Object) ([]byte, error) {
	s, err := asSignature(obj)
	if err != nil {
		return nil, err
	}
	return DocumentKey(s.RegistryID, s.DocumentID), nil
}

func idxSignatureDocSigner(obj orm.Object) ([]byte, error) {
	s, err := asSignature(obj)
	if err != nil {
		return nil, err
	}
	return append(DocumentKey(s.RegistryID, s.DocumentID), s.Signer...), nil
}

func idxSignatureSigner(obj orm.Object) ([]byte, error) {
	s, err := asSignature(obj)
	if err != nil {
		return nil, err
	}
	return UserIndexKey(s.RegistryID, s.Signer), nil
}

func idxEventDocument(obj orm.Object) ([]byte, error) {
	e, ok := obj.Value().(*Event)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	if e.Kind == EventKindOwnershipTransferred {
		// Not related to any document.
		return nil, nil
	}
	return DocumentKey(e.RegistryID, e.DocumentID), nil
}

func cloneAddress(a weave.Address) weave.Address {
	if a == nil {
		return nil
	}
	return append(weave.Address(nil), a...)
}
