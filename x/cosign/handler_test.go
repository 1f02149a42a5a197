package cosign

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/app"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/store"
	"github.com/iov-one/weave/weavetest"
	"github.com/iov-one/weave/weavetest/assert"
)

// registryEnv processes messages the same way the application does, with a
// configurable main signer.
type registryEnv struct {
	t    testing.TB
	db   store.CacheableKVStore
	auth *weavetest.CtxAuth
	rt   *app.Router
	now  time.Time
}

func newRegistryEnv(t testing.TB) *registryEnv {
	db := store.MemStore()
	migration.MustInitPkg(db, packageName)

	auth := &weavetest.CtxAuth{Key: "auth"}
	rt := app.NewRouter()
	RegisterRoutes(rt, auth)

	return &registryEnv{
		t:    t,
		db:   db,
		auth: auth,
		rt:   rt,
		now:  time.Date(2019, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (e *registryEnv) context(signer weave.Condition) weave.Context {
	ctx := weave.WithHeight(context.Background(), 42)
	ctx = weave.WithBlockTime(ctx, e.now)
	if signer != nil {
		ctx = e.auth.SetConditions(ctx, signer)
	}
	return ctx
}

// exec runs both check and deliver. Check is run on a discarded cache, the
// same way the application does before accepting a transaction.
func (e *registryEnv) exec(signer weave.Condition, msg weave.Msg) (*weave.DeliverResult, error) {
	e.t.Helper()

	ctx := e.context(signer)
	tx := &weavetest.Tx{Msg: msg}

	cache := e.db.CacheWrap()
	_, checkErr := e.rt.Check(ctx, cache, tx)
	cache.Discard()

	res, err := e.rt.Deliver(ctx, e.db, tx)
	if (checkErr == nil) != (err == nil) {
		e.t.Fatalf("check and deliver disagree: %v != %v", checkErr, err)
	}
	return res, err
}

func (e *registryEnv) mustExec(signer weave.Condition, msg weave.Msg) *weave.DeliverResult {
	e.t.Helper()
	res, err := e.exec(signer, msg)
	if err != nil {
		e.t.Fatalf("cannot process %T: %+v", msg, err)
	}
	return res
}

func (e *registryEnv) createDocument(creator weave.Condition, registryID weave.Address, signers ...weave.Condition) uint64 {
	e.t.Helper()
	addrs := make([]weave.Address, len(signers))
	for i, s := range signers {
		addrs[i] = s.Address()
	}
	res := e.mustExec(creator, &CreateDocumentMsg{
		Metadata:    &weave.Metadata{Schema: 1},
		RegistryID:  registryID,
		Title:       "lease agreement",
		Description: "flat 4B",
		FileHash:    "8a3f5c",
		Signers:     addrs,
	})
	doc, err := GetDocument(e.db, registryID, e.lastDocumentID(registryID))
	assert.Nil(e.t, err)
	assert.Equal(e.t, DocumentKey(registryID, doc.ID)[len(registryID):], res.Data)
	return doc.ID
}

func (e *registryEnv) lastDocumentID(registryID weave.Address) uint64 {
	reg, err := GetRegistry(e.db, registryID)
	assert.Nil(e.t, err)
	return reg.DocumentCount - 1
}

func (e *registryEnv) sign(signer weave.Condition, registryID weave.Address, id uint64, signature string) (*weave.DeliverResult, error) {
	return e.exec(signer, &SignDocumentMsg{
		Metadata:   &weave.Metadata{Schema: 1},
		RegistryID: registryID,
		DocumentID: id,
		Signature:  signature,
	})
}

func TestCreateRegistry(t *testing.T) {
	alice := weavetest.NewCondition()

	env := newRegistryEnv(t)
	res := env.mustExec(alice, &CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}})
	assert.Equal(t, []byte(alice.Address()), res.Data)

	reg, err := GetRegistry(env.db, alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, alice.Address(), reg.Owner)
	assert.Equal(t, uint64(0), reg.DocumentCount)
	assert.Equal(t, uint64(0), reg.EventCount)

	_, err = env.exec(alice, &CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}})
	assert.IsErr(t, ErrAlreadyInitialized, err)

	_, err = env.exec(nil, &CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestCreateDocument(t *testing.T) {
	var (
		owner = weavetest.NewCondition()
		alice = weavetest.NewCondition()
		bobby = weavetest.NewCondition()
	)

	cases := map[string]struct {
		Init    func(t testing.TB, db weave.KVStore)
		Signer  weave.Condition
		Msg     *CreateDocumentMsg
		WantErr *errors.Error
	}{
		"success": {
			Signer: alice,
			Msg: &CreateDocumentMsg{
				Metadata:   &weave.Metadata{Schema: 1},
				RegistryID: owner.Address(),
				Title:      "contract",
				FileHash:   "ff00",
				Signers:    []weave.Address{alice.Address(), bobby.Address()},
			},
		},
		"registry must exist": {
			Signer: alice,
			Msg: &CreateDocumentMsg{
				Metadata:   &weave.Metadata{Schema: 1},
				RegistryID: bobby.Address(),
				Title:      "contract",
				FileHash:   "ff00",
				Signers:    []weave.Address{alice.Address()},
			},
			WantErr: errors.ErrNotFound,
		},
		"signers are required": {
			Signer: alice,
			Msg: &CreateDocumentMsg{
				Metadata:   &weave.Metadata{Schema: 1},
				RegistryID: owner.Address(),
				Title:      "contract",
				FileHash:   "ff00",
			},
			WantErr: errors.ErrInput,
		},
		"title is required": {
			Signer: alice,
			Msg: &CreateDocumentMsg{
				Metadata:   &weave.Metadata{Schema: 1},
				RegistryID: owner.Address(),
				FileHash:   "ff00",
				Signers:    []weave.Address{alice.Address()},
			},
			WantErr: errors.ErrInput,
		},
		"file hash is required": {
			Signer: alice,
			Msg: &CreateDocumentMsg{
				Metadata:   &weave.Metadata{Schema: 1},
				RegistryID: owner.Address(),
				Title:      "contract",
				Signers:    []weave.Address{alice.Address()},
			},
			WantErr: errors.ErrInput,
		},
		"signers are checked before the title": {
			Signer: alice,
			Msg: &CreateDocumentMsg{
				Metadata:   &weave.Metadata{Schema: 1},
				RegistryID: owner.Address(),
			},
			WantErr: errors.ErrInput,
		},
		"signature required": {
			Msg: &CreateDocumentMsg{
				Metadata:   &weave.Metadata{Schema: 1},
				RegistryID: owner.Address(),
				Title:      "contract",
				FileHash:   "ff00",
				Signers:    []weave.Address{alice.Address()},
			},
			WantErr: errors.ErrUnauthorized,
		},
		"configured signers limit": {
			Init: func(t testing.TB, db weave.KVStore) {
				assert.Nil(t, gconfSave(db, &Configuration{MaxSigners: 1}))
			},
			Signer: alice,
			Msg: &CreateDocumentMsg{
				Metadata:   &weave.Metadata{Schema: 1},
				RegistryID: owner.Address(),
				Title:      "contract",
				FileHash:   "ff00",
				Signers:    []weave.Address{alice.Address(), bobby.Address()},
			},
			WantErr: errors.ErrInput,
		},
		"configured title limit": {
			Init: func(t testing.TB, db weave.KVStore) {
				assert.Nil(t, gconfSave(db, &Configuration{MaxTitleLength: 4}))
			},
			Signer: alice,
			Msg: &CreateDocumentMsg{
				Metadata:   &weave.Metadata{Schema: 1},
				RegistryID: owner.Address(),
				Title:      "contract",
				FileHash:   "ff00",
				Signers:    []weave.Address{alice.Address()},
			},
			WantErr: errors.ErrInput,
		},
		"counter overflow": {
			Init: func(t testing.TB, db weave.KVStore) {
				_, err := NewRegistryBucket().Put(db, owner.Address(), &Registry{
					Metadata:      &weave.Metadata{Schema: 1},
					Owner:         owner.Address(),
					DocumentCount: math.MaxUint64,
					EventCount:    math.MaxUint64,
				})
				assert.Nil(t, err)
			},
			Signer: alice,
			Msg: &CreateDocumentMsg{
				Metadata:   &weave.Metadata{Schema: 1},
				RegistryID: owner.Address(),
				Title:      "contract",
				FileHash:   "ff00",
				Signers:    []weave.Address{alice.Address()},
			},
			WantErr: ErrCounterOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			env := newRegistryEnv(t)
			env.mustExec(owner, &CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}})
			if tc.Init != nil {
				tc.Init(t, env.db)
			}
			before, err := GetRegistry(env.db, owner.Address())
			assert.Nil(t, err)

			_, err = env.exec(tc.Signer, tc.Msg)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			after, err := GetRegistry(env.db, owner.Address())
			assert.Nil(t, err)
			if tc.WantErr != nil {
				assert.Equal(t, before.DocumentCount, after.DocumentCount)
				assert.Equal(t, before.EventCount, after.EventCount)
				return
			}

			assert.Equal(t, before.DocumentCount+1, after.DocumentCount)
			doc, err := GetDocument(env.db, owner.Address(), before.DocumentCount)
			assert.Nil(t, err)
			assert.Equal(t, tc.Msg.Title, doc.Title)
			assert.Equal(t, tc.Msg.Signers, doc.Signers)
			assert.Equal(t, tc.Signer.Address(), doc.Creator)
			assert.Equal(t, false, doc.Completed)
			assert.Equal(t, "", doc.FinalHash)

			events, err := GetEvents(env.db, owner.Address(), 0, 0)
			assert.Nil(t, err)
			assert.Equal(t, 1, len(events))
			assert.Equal(t, EventKindDocumentCreated, events[0].Kind)
			assert.Equal(t, doc.Signers, events[0].Signers)
			assert.Equal(t, doc.Creator, events[0].Creator)
			assert.Equal(t, doc.Title, events[0].Title)
			assert.Equal(t, int64(42), events[0].Height)
		})
	}
}

func TestDocumentIDsAreIncreasing(t *testing.T) {
	owner := weavetest.NewCondition()
	alice := weavetest.NewCondition()

	env := newRegistryEnv(t)
	env.mustExec(owner, &CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}})

	var last uint64
	for i := 0; i < 5; i++ {
		id := env.createDocument(alice, owner.Address(), alice)
		if i > 0 && id <= last {
			t.Fatalf("document ID %d not greater than %d", id, last)
		}
		last = id
	}
	assert.Equal(t, uint64(4), last)
}

func TestSignAndComplete(t *testing.T) {
	var (
		owner = weavetest.NewCondition()
		alice = weavetest.NewCondition()
		bobby = weavetest.NewCondition()
	)

	env := newRegistryEnv(t)
	env.mustExec(owner, &CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}})
	reg := owner.Address()
	id := env.createDocument(owner, reg, alice, bobby)

	_, err := GetDocumentSignatures(env.db, reg, id)
	assert.IsErr(t, ErrDocumentNotFound, err)

	res, err := env.sign(alice, reg, id, "sigA")
	assert.Nil(t, err)
	assert.Equal(t, 3, len(res.Tags))
	assert.Equal(t, TagEvent, string(res.Tags[1].Key))
	assert.Equal(t, "DocumentSigned", string(res.Tags[1].Value))

	doc, err := GetDocument(env.db, reg, id)
	assert.Nil(t, err)
	assert.Equal(t, false, doc.Completed)
	sigs, err := GetDocumentSignatures(env.db, reg, id)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(sigs))
	assert.Equal(t, alice.Address(), sigs[0].Signer)
	assert.Equal(t, "sigA", sigs[0].Signature)
	assert.Equal(t, weave.AsUnixTime(env.now), sigs[0].SignedAt)

	res, err = env.sign(bobby, reg, id, "sigB")
	assert.Nil(t, err)
	assert.Equal(t, 5, len(res.Tags))
	assert.Equal(t, "DocumentCompleted", string(res.Tags[3].Value))

	doc, err = GetDocument(env.db, reg, id)
	assert.Nil(t, err)
	assert.Equal(t, true, doc.Completed)
	assert.Equal(t, "sigB", doc.FinalHash)

	sigs, err = GetDocumentSignatures(env.db, reg, id)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(sigs))
	assert.Equal(t, alice.Address(), sigs[0].Signer)
	assert.Equal(t, bobby.Address(), sigs[1].Signer)

	events, err := GetEvents(env.db, reg, 0, 0)
	assert.Nil(t, err)
	kinds := make([]EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []EventKind{
		EventKindDocumentCreated,
		EventKindDocumentSigned,
		EventKindDocumentSigned,
		EventKindDocumentCompleted,
	}, kinds)
	assert.Equal(t, "sigB", events[3].FinalHash)

	// No signature can be added to a completed document.
	_, err = env.sign(alice, reg, id, "sigA")
	assert.IsErr(t, ErrDocumentCompleted, err)
	_, err = env.sign(bobby, reg, id, "sigB2")
	assert.IsErr(t, ErrDocumentCompleted, err)
	_, err = env.sign(owner, reg, id, "sigC")
	assert.IsErr(t, ErrDocumentCompleted, err)
}

func TestCompletionWithSignersOutOfOrder(t *testing.T) {
	owner := weavetest.NewCondition()
	signers := []weave.Condition{
		weavetest.NewCondition(),
		weavetest.NewCondition(),
		weavetest.NewCondition(),
	}

	env := newRegistryEnv(t)
	env.mustExec(owner, &CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}})
	reg := owner.Address()
	id := env.createDocument(owner, reg, signers...)

	order := []int{2, 0, 1}
	for n, i := range order {
		_, err := env.sign(signers[i], reg, id, "sig")
		assert.Nil(t, err)

		doc, err := GetDocument(env.db, reg, id)
		assert.Nil(t, err)
		wantCompleted := n == len(order)-1
		if doc.Completed != wantCompleted {
			t.Fatalf("after %d signatures want completed=%v", n+1, wantCompleted)
		}
	}
}

func TestDuplicatedSignerCompletesWithOneSignature(t *testing.T) {
	owner := weavetest.NewCondition()
	alice := weavetest.NewCondition()

	env := newRegistryEnv(t)
	env.mustExec(owner, &CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}})
	id := env.createDocument(owner, owner.Address(), alice, alice)

	_, err := env.sign(alice, owner.Address(), id, "sigA")
	assert.Nil(t, err)
	doc, err := GetDocument(env.db, owner.Address(), id)
	assert.Nil(t, err)
	assert.Equal(t, true, doc.Completed)
}

func TestSignDocumentFailures(t *testing.T) {
	var (
		owner = weavetest.NewCondition()
		alice = weavetest.NewCondition()
		bobby = weavetest.NewCondition()
		chris = weavetest.NewCondition()
	)

	cases := map[string]struct {
		Signer     weave.Condition
		DocumentID uint64
		Signature  string
		WantErr    *errors.Error
	}{
		"document must exist": {
			Signer:     alice,
			DocumentID: 123,
			Signature:  "sig",
			WantErr:    ErrDocumentNotFound,
		},
		"only a required signer can sign": {
			Signer:    chris,
			Signature: "sig",
			WantErr:   errors.ErrUnauthorized,
		},
		"signature required": {
			Signature: "sig",
			WantErr:   errors.ErrUnauthorized,
		},
		"cannot sign twice": {
			Signer:    alice,
			Signature: "sig2",
			WantErr:   ErrAlreadySigned,
		},
		"already signed is checked before the signature": {
			Signer:  alice,
			WantErr: ErrAlreadySigned,
		},
		"signature artifact is required": {
			Signer:  bobby,
			WantErr: errors.ErrInput,
		},
		"membership is checked before the signature": {
			Signer:  chris,
			WantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			env := newRegistryEnv(t)
			env.mustExec(owner, &CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}})
			id := env.createDocument(owner, owner.Address(), alice, bobby)
			assert.Equal(t, uint64(0), id)
			_, err := env.sign(alice, owner.Address(), id, "sig1")
			assert.Nil(t, err)

			_, err = env.sign(tc.Signer, owner.Address(), tc.DocumentID, tc.Signature)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			sigs, err := GetDocumentSignatures(env.db, owner.Address(), id)
			assert.Nil(t, err)
			assert.Equal(t, 1, len(sigs))
		})
	}
}

func TestUpdateDocument(t *testing.T) {
	var (
		owner = weavetest.NewCondition()
		alice = weavetest.NewCondition()
		bobby = weavetest.NewCondition()
	)

	cases := map[string]struct {
		Prepare    func(t testing.TB, env *registryEnv, id uint64)
		Signer     weave.Condition
		DocumentID uint64
		Title      string
		WantErr    *errors.Error
	}{
		"success": {
			Signer: alice,
			Title:  "new title",
		},
		"document must exist": {
			Signer:     alice,
			DocumentID: 7,
			Title:      "new title",
			WantErr:    ErrDocumentNotFound,
		},
		"only the creator can update": {
			Signer:  bobby,
			Title:   "new title",
			WantErr: errors.ErrUnauthorized,
		},
		"cannot update a signed document": {
			Prepare: func(t testing.TB, env *registryEnv, id uint64) {
				_, err := env.sign(bobby, owner.Address(), id, "sigB")
				assert.Nil(t, err)
			},
			Signer:  alice,
			Title:   "new title",
			WantErr: errors.ErrUnauthorized,
		},
		"cannot update a completed document": {
			Prepare: func(t testing.TB, env *registryEnv, id uint64) {
				_, err := env.sign(bobby, owner.Address(), id, "sigB")
				assert.Nil(t, err)
				_, err = env.sign(alice, owner.Address(), id, "sigA")
				assert.Nil(t, err)
			},
			Signer:  alice,
			Title:   "new title",
			WantErr: ErrDocumentCompleted,
		},
		"title is required": {
			Signer:  alice,
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			env := newRegistryEnv(t)
			env.mustExec(owner, &CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}})
			id := env.createDocument(alice, owner.Address(), alice, bobby)
			if tc.Prepare != nil {
				tc.Prepare(t, env, id)
			}

			_, err := env.exec(tc.Signer, &UpdateDocumentMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				RegistryID:  owner.Address(),
				DocumentID:  tc.DocumentID,
				Title:       tc.Title,
				Description: "updated",
			})
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			doc, err := GetDocument(env.db, owner.Address(), id)
			assert.Nil(t, err)
			if tc.WantErr == nil {
				assert.Equal(t, tc.Title, doc.Title)
				assert.Equal(t, "updated", doc.Description)
			} else {
				assert.Equal(t, "lease agreement", doc.Title)
			}

			// Update never emits an event.
			events, err := GetEvents(env.db, owner.Address(), 0, 0)
			assert.Nil(t, err)
			for _, e := range events {
				if e.Kind == EventKindDocumentCreated && e.Title != "lease agreement" {
					t.Fatalf("unexpected created event title: %q", e.Title)
				}
			}
		})
	}
}

func TestTransferOwnership(t *testing.T) {
	var (
		owner = weavetest.NewCondition()
		alice = weavetest.NewCondition()
		bobby = weavetest.NewCondition()
	)

	cases := map[string]struct {
		Signer    weave.Condition
		NewOwner  weave.Address
		WantErr   *errors.Error
		WantOwner weave.Address
	}{
		"success": {
			Signer:    owner,
			NewOwner:  alice.Address(),
			WantOwner: alice.Address(),
		},
		"non owner cannot transfer": {
			Signer:    bobby,
			NewOwner:  bobby.Address(),
			WantErr:   errors.ErrUnauthorized,
			WantOwner: owner.Address(),
		},
		"new owner must differ": {
			Signer:    owner,
			NewOwner:  owner.Address(),
			WantErr:   errors.ErrUnauthorized,
			WantOwner: owner.Address(),
		},
		"signature required": {
			NewOwner:  alice.Address(),
			WantErr:   errors.ErrUnauthorized,
			WantOwner: owner.Address(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			env := newRegistryEnv(t)
			env.mustExec(owner, &CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}})

			res, err := env.exec(tc.Signer, &TransferOwnershipMsg{
				Metadata:   &weave.Metadata{Schema: 1},
				RegistryID: owner.Address(),
				NewOwner:   tc.NewOwner,
			})
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			reg, err := GetRegistry(env.db, owner.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.WantOwner, reg.Owner)

			events, err := GetEvents(env.db, owner.Address(), 0, 0)
			assert.Nil(t, err)
			if tc.WantErr != nil {
				assert.Equal(t, 0, len(events))
				return
			}
			assert.Equal(t, 1, len(events))
			assert.Equal(t, EventKindOwnershipTransferred, events[0].Kind)
			assert.Equal(t, owner.Address(), events[0].PreviousOwner)
			assert.Equal(t, tc.NewOwner, events[0].NewOwner)
			assert.Equal(t, "OwnershipTransferred", string(res.Tags[1].Value))
		})
	}
}

func TestTransferredOwnershipChangesAdministration(t *testing.T) {
	owner := weavetest.NewCondition()
	alice := weavetest.NewCondition()

	env := newRegistryEnv(t)
	env.mustExec(owner, &CreateRegistryMsg{Metadata: &weave.Metadata{Schema: 1}})
	env.mustExec(owner, &TransferOwnershipMsg{
		Metadata:   &weave.Metadata{Schema: 1},
		RegistryID: owner.Address(),
		NewOwner:   alice.Address(),
	})

	_, err := env.exec(owner, &TransferOwnershipMsg{
		Metadata:   &weave.Metadata{Schema: 1},
		RegistryID: owner.Address(),
		NewOwner:   owner.Address(),
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	env.mustExec(alice, &TransferOwnershipMsg{
		Metadata:   &weave.Metadata{Schema: 1},
		RegistryID: owner.Address(),
		NewOwner:   owner.Address(),
	})
}

func gconfSave(db weave.KVStore, c *Configuration) error {
	c.Metadata = &weave.Metadata{Schema: 1}
	return gconf.Save(db, packageName, c)
}
