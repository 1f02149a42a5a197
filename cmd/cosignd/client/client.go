package client

import (
	"sort"
	"sync"

	"github.com/iov-one/cosign/x/cosign"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/app"
	"github.com/iov-one/weave/x/sigs"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
)

// CosignClient is a tendermint client wrapped to provide simple access to
// the registry data structures.
type CosignClient struct {
	conn client.Client
}

// NewClient wraps a CosignClient around an existing tendermint client
// connection.
func NewClient(conn client.Client) *CosignClient {
	return &CosignClient{conn: conn}
}

func (c *CosignClient) TendermintClient() client.Client {
	return c.conn
}

// ChainID returns the chain ID declared by the genesis of the node.
func (c *CosignClient) ChainID() (string, error) {
	gen, err := c.conn.Genesis()
	if err != nil {
		return "", err
	}
	return gen.Genesis.ChainID, nil
}

// AbciResponse contains a query result: a (possibly empty) list of key-value
// pairs, and the height at which it queried.
type AbciResponse struct {
	Models []weave.Model
	Height int64
}

// AbciQuery calls abci query on tendermint rpc and returns the decoded result
// sets. An empty response is not an error.
func (c *CosignClient) AbciQuery(path string, data []byte) (AbciResponse, error) {
	var out AbciResponse

	q, err := c.conn.ABCIQuery(path, data)
	if err != nil {
		return out, err
	}
	resp := q.Response
	if resp.IsErr() {
		return out, errors.Errorf("(%d): %s", resp.Code, resp.Log)
	}
	out.Height = resp.Height

	if len(resp.Key) == 0 {
		return out, nil
	}

	var keys, vals app.ResultSet
	if err := keys.Unmarshal(resp.Key); err != nil {
		return out, err
	}
	if err := vals.Unmarshal(resp.Value); err != nil {
		return out, err
	}
	out.Models, err = app.JoinResults(&keys, &vals)
	return out, err
}

// BroadcastTxResponse is the result of submitting a transaction.
type BroadcastTxResponse struct {
	Error    error                           // not-nil if there was an error sending
	Response *ctypes.ResultBroadcastTxCommit // not-nil if we got response from node
}

// IsError returns the error for failure if it failed, or nil if it
// succeeded.
func (b BroadcastTxResponse) IsError() error {
	if b.Error != nil {
		return b.Error
	}
	if b.Response.CheckTx.IsErr() {
		ctx := b.Response.CheckTx
		return errors.Errorf("CheckTx error: (%d) %s", ctx.Code, ctx.Log)
	}
	if b.Response.DeliverTx.IsErr() {
		dtx := b.Response.DeliverTx
		return errors.Errorf("DeliverTx error: (%d) %s", dtx.Code, dtx.Log)
	}
	return nil
}

// BroadcastTx serializes a signed transaction and writes it to the
// blockchain. It returns when the transaction is committed.
func (c *CosignClient) BroadcastTx(tx weave.Tx) BroadcastTxResponse {
	data, err := tx.Marshal()
	if err != nil {
		return BroadcastTxResponse{Error: err}
	}
	res, err := c.conn.BroadcastTxCommit(data)
	return BroadcastTxResponse{Error: err, Response: res}
}

// GetUser returns the signature sequence registered for given address. If it
// returns (nil, nil), the address never signed a transaction.
func (c *CosignClient) GetUser(addr weave.Address) (*sigs.UserData, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid address")
	}
	resp, err := c.AbciQuery("/auth", addr)
	if err != nil {
		return nil, err
	}
	if len(resp.Models) == 0 {
		return nil, nil
	}
	var user sigs.UserData
	if err := user.Unmarshal(resp.Models[0].Value); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal user")
	}
	return &user, nil
}

// Nonce has a client/address pair, queries for the nonce and caches recent
// nonce locally to quickly sign.
type Nonce struct {
	mutex     sync.Mutex
	client    *CosignClient
	addr      weave.Address
	nonce     int64
	fromQuery bool
}

// NewNonce creates a nonce for a client / address pair.
func NewNonce(c *CosignClient, addr weave.Address) *Nonce {
	return &Nonce{client: c, addr: addr}
}

// Query always queries the blockchain for the next nonce.
func (n *Nonce) Query() (int64, error) {
	user, err := n.client.GetUser(n.addr)
	if err != nil {
		return 0, err
	}
	n.mutex.Lock()
	defer n.mutex.Unlock()
	if user != nil {
		n.nonce = user.Sequence
	} else {
		n.nonce = 0
	}
	n.fromQuery = true
	return n.nonce, nil
}

// Next uses a cached value if present, otherwise Query. It always increments
// by one, assuming the last nonce was used.
func (n *Nonce) Next() (int64, error) {
	n.mutex.Lock()
	initial := !n.fromQuery && n.nonce == 0
	n.mutex.Unlock()
	if initial {
		return n.Query()
	}
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.nonce++
	n.fromQuery = false
	return n.nonce, nil
}

// GetRegistry returns the registry initialized by given identity or
// (nil, nil) if it does not exist.
func (c *CosignClient) GetRegistry(registryID weave.Address) (*cosign.Registry, error) {
	resp, err := c.AbciQuery("/cosign/registries", registryID)
	if err != nil {
		return nil, err
	}
	if len(resp.Models) == 0 {
		return nil, nil
	}
	var reg cosign.Registry
	if err := reg.Unmarshal(resp.Models[0].Value); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal registry")
	}
	return &reg, nil
}

// GetDocument returns a document or (nil, nil) if it does not exist.
func (c *CosignClient) GetDocument(registryID weave.Address, id uint64) (*cosign.Document, error) {
	resp, err := c.AbciQuery("/cosign/documents", cosign.DocumentKey(registryID, id))
	if err != nil {
		return nil, err
	}
	if len(resp.Models) == 0 {
		return nil, nil
	}
	var doc cosign.Document
	if err := doc.Unmarshal(resp.Models[0].Value); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal document")
	}
	return &doc, nil
}

// DocumentsCreatedBy returns all documents created by given user.
func (c *CosignClient) DocumentsCreatedBy(registryID, user weave.Address) ([]*cosign.Document, error) {
	resp, err := c.AbciQuery("/cosign/documents/creator", cosign.UserIndexKey(registryID, user))
	if err != nil {
		return nil, err
	}
	return decodeDocuments(resp.Models)
}

// decodeDocuments returns documents in ascending ID order.
func decodeDocuments(models []weave.Model) ([]*cosign.Document, error) {
	docs := make([]*cosign.Document, 0, len(models))
	for i, m := range models {
		var doc cosign.Document
		if err := doc.Unmarshal(m.Value); err != nil {
			return nil, errors.Wrapf(err, "cannot unmarshal document %d", i)
		}
		docs = append(docs, &doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// DocumentsAssignedTo returns all documents that given user must sign and
// that are not completed yet, in ascending ID order.
func (c *CosignClient) DocumentsAssignedTo(registryID, user weave.Address) ([]*cosign.Document, error) {
	resp, err := c.AbciQuery("/cosign/documents?"+weave.PrefixQueryMod, registryID)
	if err != nil {
		return nil, err
	}
	docs, err := decodeDocuments(resp.Models)
	if err != nil {
		return nil, err
	}
	assigned := docs[:0]
	for _, d := range docs {
		if !d.Completed && d.HasSigner(user) {
			assigned = append(assigned, d)
		}
	}
	return assigned, nil
}

// DocumentsSignedBy returns all documents signed by given user, in ascending
// ID order.
func (c *CosignClient) DocumentsSignedBy(registryID, user weave.Address) ([]*cosign.Document, error) {
	resp, err := c.AbciQuery("/cosign/signatures/signer", cosign.UserIndexKey(registryID, user))
	if err != nil {
		return nil, err
	}
	sigs, err := decodeSignatures(resp.Models)
	if err != nil {
		return nil, err
	}
	docs := make([]*cosign.Document, 0, len(sigs))
	for _, s := range sigs {
		doc, err := c.GetDocument(registryID, s.DocumentID)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, errors.Errorf("document %d not found", s.DocumentID)
		}
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Signatures returns the signatures of a document in the order they were
// submitted.
func (c *CosignClient) Signatures(registryID weave.Address, id uint64) ([]*cosign.Signature, error) {
	resp, err := c.AbciQuery("/cosign/signatures/document", cosign.DocumentKey(registryID, id))
	if err != nil {
		return nil, err
	}
	return decodeSignatures(resp.Models)
}

func decodeSignatures(models []weave.Model) ([]*cosign.Signature, error) {
	// Index results are ordered by the primary key, which is built from
	// the submission position.
	sort.Slice(models, func(i, j int) bool {
		return string(models[i].Key) < string(models[j].Key)
	})
	out := make([]*cosign.Signature, 0, len(models))
	for i, m := range models {
		var s cosign.Signature
		if err := s.Unmarshal(m.Value); err != nil {
			return nil, errors.Wrapf(err, "cannot unmarshal signature %d", i)
		}
		out = append(out, &s)
	}
	return out, nil
}

// Events returns the whole event log of a registry.
func (c *CosignClient) Events(registryID weave.Address) ([]*cosign.Event, error) {
	resp, err := c.AbciQuery("/cosign/events?"+weave.PrefixQueryMod, registryID)
	if err != nil {
		return nil, err
	}
	out := make([]*cosign.Event, 0, len(resp.Models))
	for i, m := range resp.Models {
		var e cosign.Event
		if err := e.Unmarshal(m.Value); err != nil {
			return nil, errors.Wrapf(err, "cannot unmarshal event %d", i)
		}
		out = append(out, &e)
	}
	return out, nil
}
