package cosign

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave"
)

// Types in this file mirror the declarations of codec.proto. Struct tags
// carry the field numbers of the .proto file and are used by gogo/protobuf
// to serialize the values.

type Registry struct {
	Metadata      *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner         weave.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/weave.Address" json:"owner,omitempty"`
	DocumentCount uint64          `protobuf:"varint,3,opt,name=document_count,json=documentCount,proto3" json:"document_count,omitempty"`
	EventCount    uint64          `protobuf:"varint,4,opt,name=event_count,json=eventCount,proto3" json:"event_count,omitempty"`
}

type Document struct {
	Metadata    *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	RegistryID  weave.Address   `protobuf:"bytes,2,opt,name=registry_id,json=registryId,proto3,casttype=github.com/iov-one/weave.Address" json:"registry_id,omitempty"`
	ID          uint64          `protobuf:"varint,3,opt,name=id,proto3" json:"id,omitempty"`
	Title       string          `protobuf:"bytes,4,opt,name=title,proto3" json:"title,omitempty"`
	Description string          `protobuf:"bytes,5,opt,name=description,proto3" json:"description,omitempty"`
	FileHash    string          `protobuf:"bytes,6,opt,name=file_hash,json=fileHash,proto3" json:"file_hash,omitempty"`
	FinalHash   string          `protobuf:"bytes,7,opt,name=final_hash,json=finalHash,proto3" json:"final_hash,omitempty"`
	Signers     []weave.Address `protobuf:"bytes,8,rep,name=signers,proto3,casttype=github.com/iov-one/weave.Address" json:"signers,omitempty"`
	Creator     weave.Address   `protobuf:"bytes,9,opt,name=creator,proto3,casttype=github.com/iov-one/weave.Address" json:"creator,omitempty"`
	Completed   bool            `protobuf:"varint,10,opt,name=completed,proto3" json:"completed,omitempty"`
}

type Signature struct {
	Metadata   *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	RegistryID weave.Address   `protobuf:"bytes,2,opt,name=registry_id,json=registryId,proto3,casttype=github.com/iov-one/weave.Address" json:"registry_id,omitempty"`
	DocumentID uint64          `protobuf:"varint,3,opt,name=document_id,json=documentId,proto3" json:"document_id,omitempty"`
	Signer     weave.Address   `protobuf:"bytes,4,opt,name=signer,proto3,casttype=github.com/iov-one/weave.Address" json:"signer,omitempty"`
	Signature  string          `protobuf:"bytes,5,opt,name=signature,proto3" json:"signature,omitempty"`
	SignedAt   weave.UnixTime  `protobuf:"varint,6,opt,name=signed_at,json=signedAt,proto3,casttype=github.com/iov-one/weave.UnixTime" json:"signed_at,omitempty"`
}

type EventKind int32

const (
	EventKindInvalid              EventKind = 0
	EventKindDocumentCreated      EventKind = 1
	EventKindDocumentSigned       EventKind = 2
	EventKindDocumentCompleted    EventKind = 3
	EventKindOwnershipTransferred EventKind = 4
)

var eventKindNames = map[EventKind]string{
	EventKindInvalid:              "Invalid",
	EventKindDocumentCreated:      "DocumentCreated",
	EventKindDocumentSigned:       "DocumentSigned",
	EventKindDocumentCompleted:    "DocumentCompleted",
	EventKindOwnershipTransferred: "OwnershipTransferred",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

var eventKindProtoNames = map[int32]string{
	0: "EVENT_KIND_INVALID",
	1: "EVENT_KIND_DOCUMENT_CREATED",
	2: "EVENT_KIND_DOCUMENT_SIGNED",
	3: "EVENT_KIND_DOCUMENT_COMPLETED",
	4: "EVENT_KIND_OWNERSHIP_TRANSFERRED",
}

var eventKindProtoValues = map[string]int32{
	"EVENT_KIND_INVALID":               0,
	"EVENT_KIND_DOCUMENT_CREATED":      1,
	"EVENT_KIND_DOCUMENT_SIGNED":       2,
	"EVENT_KIND_DOCUMENT_COMPLETED":    3,
	"EVENT_KIND_OWNERSHIP_TRANSFERRED": 4,
}

type Event struct {
	Metadata      *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	RegistryID    weave.Address   `protobuf:"bytes,2,opt,name=registry_id,json=registryId,proto3,casttype=github.com/iov-one/weave.Address" json:"registry_id,omitempty"`
	Kind          EventKind       `protobuf:"varint,3,opt,name=kind,proto3,enum=cosign.EventKind" json:"kind,omitempty"`
	DocumentID    uint64          `protobuf:"varint,4,opt,name=document_id,json=documentId,proto3" json:"document_id,omitempty"`
	Title         string          `protobuf:"bytes,5,opt,name=title,proto3" json:"title,omitempty"`
	Signers       []weave.Address `protobuf:"bytes,6,rep,name=signers,proto3,casttype=github.com/iov-one/weave.Address" json:"signers,omitempty"`
	Creator       weave.Address   `protobuf:"bytes,7,opt,name=creator,proto3,casttype=github.com/iov-one/weave.Address" json:"creator,omitempty"`
	Signer        weave.Address   `protobuf:"bytes,8,opt,name=signer,proto3,casttype=github.com/iov-one/weave.Address" json:"signer,omitempty"`
	FinalHash     string          `protobuf:"bytes,9,opt,name=final_hash,json=finalHash,proto3" json:"final_hash,omitempty"`
	PreviousOwner weave.Address   `protobuf:"bytes,10,opt,name=previous_owner,json=previousOwner,proto3,casttype=github.com/iov-one/weave.Address" json:"previous_owner,omitempty"`
	NewOwner      weave.Address   `protobuf:"bytes,11,opt,name=new_owner,json=newOwner,proto3,casttype=github.com/iov-one/weave.Address" json:"new_owner,omitempty"`
	Height        int64           `protobuf:"varint,12,opt,name=height,proto3" json:"height,omitempty"`
}

type Configuration struct {
	Metadata             *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner                weave.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/weave.Address" json:"owner,omitempty"`
	MaxSigners           uint32          `protobuf:"varint,3,opt,name=max_signers,json=maxSigners,proto3" json:"max_signers,omitempty"`
	MaxTitleLength       uint32          `protobuf:"varint,4,opt,name=max_title_length,json=maxTitleLength,proto3" json:"max_title_length,omitempty"`
	MaxDescriptionLength uint32          `protobuf:"varint,5,opt,name=max_description_length,json=maxDescriptionLength,proto3" json:"max_description_length,omitempty"`
}

type CreateRegistryMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

type CreateDocumentMsg struct {
	Metadata    *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	RegistryID  weave.Address   `protobuf:"bytes,2,opt,name=registry_id,json=registryId,proto3,casttype=github.com/iov-one/weave.Address" json:"registry_id,omitempty"`
	Title       string          `protobuf:"bytes,3,opt,name=title,proto3" json:"title,omitempty"`
	Description string          `protobuf:"bytes,4,opt,name=description,proto3" json:"description,omitempty"`
	FileHash    string          `protobuf:"bytes,5,opt,name=file_hash,json=fileHash,proto3" json:"file_hash,omitempty"`
	Signers     []weave.Address `protobuf:"bytes,6,rep,name=signers,proto3,casttype=github.com/iov-one/weave.Address" json:"signers,omitempty"`
}

type SignDocumentMsg struct {
	Metadata   *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	RegistryID weave.Address   `protobuf:"bytes,2,opt,name=registry_id,json=registryId,proto3,casttype=github.com/iov-one/weave.Address" json:"registry_id,omitempty"`
	DocumentID uint64          `protobuf:"varint,3,opt,name=document_id,json=documentId,proto3" json:"document_id,omitempty"`
	Signature  string          `protobuf:"bytes,4,opt,name=signature,proto3" json:"signature,omitempty"`
}

type UpdateDocumentMsg struct {
	Metadata    *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	RegistryID  weave.Address   `protobuf:"bytes,2,opt,name=registry_id,json=registryId,proto3,casttype=github.com/iov-one/weave.Address" json:"registry_id,omitempty"`
	DocumentID  uint64          `protobuf:"varint,3,opt,name=document_id,json=documentId,proto3" json:"document_id,omitempty"`
	Title       string          `protobuf:"bytes,4,opt,name=title,proto3" json:"title,omitempty"`
	Description string          `protobuf:"bytes,5,opt,name=description,proto3" json:"description,omitempty"`
}

type TransferOwnershipMsg struct {
	Metadata   *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	RegistryID weave.Address   `protobuf:"bytes,2,opt,name=registry_id,json=registryId,proto3,casttype=github.com/iov-one/weave.Address" json:"registry_id,omitempty"`
	NewOwner   weave.Address   `protobuf:"bytes,3,opt,name=new_owner,json=newOwner,proto3,casttype=github.com/iov-one/weave.Address" json:"new_owner,omitempty"`
}

type UpdateConfigurationMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *Configuration  `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *Registry) GetMetadata() *weave.Metadata               { return m.Metadata }
func (m *Document) GetMetadata() *weave.Metadata               { return m.Metadata }
func (m *Signature) GetMetadata() *weave.Metadata              { return m.Metadata }
func (m *Event) GetMetadata() *weave.Metadata                  { return m.Metadata }
func (m *Configuration) GetMetadata() *weave.Metadata          { return m.Metadata }
func (m *CreateRegistryMsg) GetMetadata() *weave.Metadata      { return m.Metadata }
func (m *CreateDocumentMsg) GetMetadata() *weave.Metadata      { return m.Metadata }
func (m *SignDocumentMsg) GetMetadata() *weave.Metadata        { return m.Metadata }
func (m *UpdateDocumentMsg) GetMetadata() *weave.Metadata      { return m.Metadata }
func (m *TransferOwnershipMsg) GetMetadata() *weave.Metadata   { return m.Metadata }
func (m *UpdateConfigurationMsg) GetMetadata() *weave.Metadata { return m.Metadata }

// GetOwner fulfills gconf.OwnedConfig interface.
func (m *Configuration) GetOwner() weave.Address { return m.Owner }

// Every message type has an unexported twin with the same memory layout and
// struct tags but without the Marshal and Unmarshal methods. proto.Marshal
// delegates to the Marshal method of a message when one exists, so the
// conversion to the twin makes gogo serialize the fields using the tags.

type registryPB Registry

func (m *registryPB) Reset()         { *m = registryPB{} }
func (m *registryPB) String() string { return proto.CompactTextString(m) }
func (*registryPB) ProtoMessage()    {}

func (m *Registry) Reset()         { *m = Registry{} }
func (m *Registry) String() string { return proto.CompactTextString((*registryPB)(m)) }
func (*Registry) ProtoMessage()    {}

func (m *Registry) Marshal() ([]byte, error) {
	return proto.Marshal((*registryPB)(m))
}

func (m *Registry) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*registryPB)(m))
}

type documentPB Document

func (m *documentPB) Reset()         { *m = documentPB{} }
func (m *documentPB) String() string { return proto.CompactTextString(m) }
func (*documentPB) ProtoMessage()    {}

func (m *Document) Reset()         { *m = Document{} }
func (m *Document) String() string { return proto.CompactTextString((*documentPB)(m)) }
func (*Document) ProtoMessage()    {}

func (m *Document) Marshal() ([]byte, error) {
	return proto.Marshal((*documentPB)(m))
}

func (m *Document) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*documentPB)(m))
}

type signaturePB Signature

func (m *signaturePB) Reset()         { *m = signaturePB{} }
func (m *signaturePB) String() string { return proto.CompactTextString(m) }
func (*signaturePB) ProtoMessage()    {}

func (m *Signature) Reset()         { *m = Signature{} }
func (m *Signature) String() string { return proto.CompactTextString((*signaturePB)(m)) }
func (*Signature) ProtoMessage()    {}

func (m *Signature) Marshal() ([]byte, error) {
	return proto.Marshal((*signaturePB)(m))
}

func (m *Signature) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*signaturePB)(m))
}

type eventPB Event

func (m *eventPB) Reset()         { *m = eventPB{} }
func (m *eventPB) String() string { return proto.CompactTextString(m) }
func (*eventPB) ProtoMessage()    {}

func (m *Event) Reset()         { *m = Event{} }
func (m *Event) String() string { return proto.CompactTextString((*eventPB)(m)) }
func (*Event) ProtoMessage()    {}

func (m *Event) Marshal() ([]byte, error) {
	return proto.Marshal((*eventPB)(m))
}

func (m *Event) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*eventPB)(m))
}

type configurationPB Configuration

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString((*configurationPB)(m)) }
func (*Configuration) ProtoMessage()    {}

func (m *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationPB)(m))
}

func (m *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationPB)(m))
}

type createRegistryMsgPB CreateRegistryMsg

func (m *createRegistryMsgPB) Reset()         { *m = createRegistryMsgPB{} }
func (m *createRegistryMsgPB) String() string { return proto.CompactTextString(m) }
func (*createRegistryMsgPB) ProtoMessage()    {}

func (m *CreateRegistryMsg) Reset()         { *m = CreateRegistryMsg{} }
func (m *CreateRegistryMsg) String() string { return proto.CompactTextString((*createRegistryMsgPB)(m)) }
func (*CreateRegistryMsg) ProtoMessage()    {}

func (m *CreateRegistryMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createRegistryMsgPB)(m))
}

func (m *CreateRegistryMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createRegistryMsgPB)(m))
}

type createDocumentMsgPB CreateDocumentMsg

func (m *createDocumentMsgPB) Reset()         { *m = createDocumentMsgPB{} }
func (m *createDocumentMsgPB) String() string { return proto.CompactTextString(m) }
func (*createDocumentMsgPB) ProtoMessage()    {}

func (m *CreateDocumentMsg) Reset()         { *m = CreateDocumentMsg{} }
func (m *CreateDocumentMsg) String() string { return proto.CompactTextString((*createDocumentMsgPB)(m)) }
func (*CreateDocumentMsg) ProtoMessage()    {}

func (m *CreateDocumentMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createDocumentMsgPB)(m))
}

func (m *CreateDocumentMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createDocumentMsgPB)(m))
}

type signDocumentMsgPB SignDocumentMsg

func (m *signDocumentMsgPB) Reset()         { *m = signDocumentMsgPB{} }
func (m *signDocumentMsgPB) String() string { return proto.CompactTextString(m) }
func (*signDocumentMsgPB) ProtoMessage()    {}

func (m *SignDocumentMsg) Reset()         { *m = SignDocumentMsg{} }
func (m *SignDocumentMsg) String() string { return proto.CompactTextString((*signDocumentMsgPB)(m)) }
func (*SignDocumentMsg) ProtoMessage()    {}

func (m *SignDocumentMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*signDocumentMsgPB)(m))
}

func (m *SignDocumentMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*signDocumentMsgPB)(m))
}

type updateDocumentMsgPB UpdateDocumentMsg

func (m *updateDocumentMsgPB) Reset()         { *m = updateDocumentMsgPB{} }
func (m *updateDocumentMsgPB) String() string { return proto.CompactTextString(m) }
func (*updateDocumentMsgPB) ProtoMessage()    {}

func (m *UpdateDocumentMsg) Reset()         { *m = UpdateDocumentMsg{} }
func (m *UpdateDocumentMsg) String() string { return proto.CompactTextString((*updateDocumentMsgPB)(m)) }
func (*UpdateDocumentMsg) ProtoMessage()    {}

func (m *UpdateDocumentMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*updateDocumentMsgPB)(m))
}

func (m *UpdateDocumentMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*updateDocumentMsgPB)(m))
}

type transferOwnershipMsgPB TransferOwnershipMsg

func (m *transferOwnershipMsgPB) Reset()         { *m = transferOwnershipMsgPB{} }
func (m *transferOwnershipMsgPB) String() string { return proto.CompactTextString(m) }
func (*transferOwnershipMsgPB) ProtoMessage()    {}

func (m *TransferOwnershipMsg) Reset()         { *m = TransferOwnershipMsg{} }
func (m *TransferOwnershipMsg) String() string { return proto.CompactTextString((*transferOwnershipMsgPB)(m)) }
func (*TransferOwnershipMsg) ProtoMessage()    {}

func (m *TransferOwnershipMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*transferOwnershipMsgPB)(m))
}

func (m *TransferOwnershipMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*transferOwnershipMsgPB)(m))
}

type updateConfigurationMsgPB UpdateConfigurationMsg

func (m *updateConfigurationMsgPB) Reset()         { *m = updateConfigurationMsgPB{} }
func (m *updateConfigurationMsgPB) String() string { return proto.CompactTextString(m) }
func (*updateConfigurationMsgPB) ProtoMessage()    {}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString((*updateConfigurationMsgPB)(m)) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*updateConfigurationMsgPB)(m))
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*updateConfigurationMsgPB)(m))
}

func init() {
	proto.RegisterEnum("cosign.EventKind", eventKindProtoNames, eventKindProtoValues)

	proto.RegisterType((*Registry)(nil), "cosign.Registry")
	proto.RegisterType((*Document)(nil), "cosign.Document")
	proto.RegisterType((*Signature)(nil), "cosign.Signature")
	proto.RegisterType((*Event)(nil), "cosign.Event")
	proto.RegisterType((*Configuration)(nil), "cosign.Configuration")
	proto.RegisterType((*CreateRegistryMsg)(nil), "cosign.CreateRegistryMsg")
	proto.RegisterType((*CreateDocumentMsg)(nil), "cosign.CreateDocumentMsg")
	proto.RegisterType((*SignDocumentMsg)(nil), "cosign.SignDocumentMsg")
	proto.RegisterType((*UpdateDocumentMsg)(nil), "cosign.UpdateDocumentMsg")
	proto.RegisterType((*TransferOwnershipMsg)(nil), "cosign.TransferOwnershipMsg")
	proto.RegisterType((*UpdateConfigurationMsg)(nil), "cosign.UpdateConfigurationMsg")
}
