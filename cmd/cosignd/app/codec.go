package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/cosign/x/cosign"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/x/sigs"
)

// Tx mirrors the Tx declaration of codec.proto. Each message has its own
// optional field and exactly one of them must be set.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`

	CreateRegistryMsg      *cosign.CreateRegistryMsg      `protobuf:"bytes,51,opt,name=cosign_create_registry_msg,json=cosignCreateRegistryMsg,proto3" json:"cosign_create_registry_msg,omitempty"`
	CreateDocumentMsg      *cosign.CreateDocumentMsg      `protobuf:"bytes,52,opt,name=cosign_create_document_msg,json=cosignCreateDocumentMsg,proto3" json:"cosign_create_document_msg,omitempty"`
	SignDocumentMsg        *cosign.SignDocumentMsg        `protobuf:"bytes,53,opt,name=cosign_sign_document_msg,json=cosignSignDocumentMsg,proto3" json:"cosign_sign_document_msg,omitempty"`
	UpdateDocumentMsg      *cosign.UpdateDocumentMsg      `protobuf:"bytes,54,opt,name=cosign_update_document_msg,json=cosignUpdateDocumentMsg,proto3" json:"cosign_update_document_msg,omitempty"`
	TransferOwnershipMsg   *cosign.TransferOwnershipMsg   `protobuf:"bytes,55,opt,name=cosign_transfer_ownership_msg,json=cosignTransferOwnershipMsg,proto3" json:"cosign_transfer_ownership_msg,omitempty"`
	UpdateConfigurationMsg *cosign.UpdateConfigurationMsg `protobuf:"bytes,56,opt,name=cosign_update_configuration_msg,json=cosignUpdateConfigurationMsg,proto3" json:"cosign_update_configuration_msg,omitempty"`
	UpgradeSchemaMsg       *migration.UpgradeSchemaMsg    `protobuf:"bytes,57,opt,name=migration_upgrade_schema_msg,json=migrationUpgradeSchemaMsg,proto3" json:"migration_upgrade_schema_msg,omitempty"`
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// messages returns all messages set on the transaction in field number
// order.
func (tx *Tx) messages() []weave.Msg {
	var msgs []weave.Msg
	if tx.CreateRegistryMsg != nil {
		msgs = append(msgs, tx.CreateRegistryMsg)
	}
	if tx.CreateDocumentMsg != nil {
		msgs = append(msgs, tx.CreateDocumentMsg)
	}
	if tx.SignDocumentMsg != nil {
		msgs = append(msgs, tx.SignDocumentMsg)
	}
	if tx.UpdateDocumentMsg != nil {
		msgs = append(msgs, tx.UpdateDocumentMsg)
	}
	if tx.TransferOwnershipMsg != nil {
		msgs = append(msgs, tx.TransferOwnershipMsg)
	}
	if tx.UpdateConfigurationMsg != nil {
		msgs = append(msgs, tx.UpdateConfigurationMsg)
	}
	if tx.UpgradeSchemaMsg != nil {
		msgs = append(msgs, tx.UpgradeSchemaMsg)
	}
	return msgs
}

// txPB shares the layout of Tx but has no Marshal method, so that gogo
// serializes it using the struct tags instead of delegating back to Tx.
type txPB Tx

func (m *txPB) Reset()         { *m = txPB{} }
func (m *txPB) String() string { return proto.CompactTextString(m) }
func (*txPB) ProtoMessage()    {}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString((*txPB)(m)) }
func (*Tx) ProtoMessage()    {}

// Marshal writes fields in field number order, which keeps the sign bytes
// deterministic.
func (m *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txPB)(m))
}

func (m *Tx) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*txPB)(m))
}

func init() {
	proto.RegisterType((*Tx)(nil), "cosignd.Tx")
}
