package cosign

import (
	"sort"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
)

// GetRegistry returns the registry initialized by given identity.
func GetRegistry(db weave.ReadOnlyKVStore, registryID weave.Address) (*Registry, error) {
	return newBuckets().registry(db, registryID)
}

// GetDocument returns the document with given ID. ErrDocumentNotFound is
// returned if it does not exist.
func GetDocument(db weave.ReadOnlyKVStore, registryID weave.Address, id uint64) (*Document, error) {
	return newBuckets().document(db, registryID, id)
}

// GetDocumentSignatures returns the signatures of a document, in the order
// they were submitted. A sequence of signatures exists only once the first
// signature was submitted. Until then ErrDocumentNotFound is returned, even
// if the document itself exists.
func GetDocumentSignatures(db weave.ReadOnlyKVStore, registryID weave.Address, id uint64) ([]*Signature, error) {
	sigs, err := newBuckets().documentSignatures(db, registryID, id)
	if err != nil {
		return nil, err
	}
	if len(sigs) == 0 {
		return nil, errors.Wrapf(ErrDocumentNotFound, "no signatures of document %d", id)
	}
	return sigs, nil
}

// GetDocumentsCreatedByUser returns all documents created by given user, in
// the creation order.
func GetDocumentsCreatedByUser(db weave.ReadOnlyKVStore, registryID, user weave.Address) ([]*Document, error) {
	var docs []*Document
	_, err := newBuckets().documents.ByIndex(db, indexCreator, UserIndexKey(registryID, user), &docs)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return nil, errors.Wrap(err, "cannot load documents")
	}
	return docs, nil
}

// GetDocumentsAssignedToUserForSigning returns all documents that given user
// must sign and that are not completed yet, in ascending ID order. All
// documents of the registry are scanned.
func GetDocumentsAssignedToUserForSigning(db weave.ReadOnlyKVStore, registryID, user weave.Address) ([]*Document, error) {
	b := newBuckets()
	reg, err := b.registry(db, registryID)
	if err != nil {
		return nil, err
	}
	var docs []*Document
	for id := uint64(0); id < reg.DocumentCount; id++ {
		doc, err := b.document(db, registryID, id)
		if err != nil {
			return nil, err
		}
		if !doc.Completed && doc.HasSigner(user) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// GetDocumentsSignedByUser returns all documents signed by given user, in
// ascending ID order.
func GetDocumentsSignedByUser(db weave.ReadOnlyKVStore, registryID, user weave.Address) ([]*Document, error) {
	b := newBuckets()
	var sigs []*Signature
	_, err := b.signatures.ByIndex(db, indexSigner, UserIndexKey(registryID, user), &sigs)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return nil, errors.Wrap(err, "cannot load signatures")
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].DocumentID < sigs[j].DocumentID })

	docs := make([]*Document, 0, len(sigs))
	for _, s := range sigs {
		doc, err := b.document(db, registryID, s.DocumentID)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// GetEvents returns the event log of a registry, starting with the event at
// given position. At most limit events are returned. Zero limit means no
// limit.
func GetEvents(db weave.ReadOnlyKVStore, registryID weave.Address, offset, limit uint64) ([]*Event, error) {
	b := newBuckets()
	reg, err := b.registry(db, registryID)
	if err != nil {
		return nil, err
	}
	var events []*Event
	for n := offset; n < reg.EventCount; n++ {
		if limit != 0 && uint64(len(events)) == limit {
			break
		}
		var e Event
		if err := b.events.One(db, EventKey(registryID, n), &e); err != nil {
			return nil, errors.Wrapf(err, "event %d", n)
		}
		events = append(events, &e)
	}
	return events, nil
}
