package cosign

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
)

func init() {
	migration.MustRegister(1, &CreateRegistryMsg{}, migration.NoModification)
	migration.MustRegister(1, &CreateDocumentMsg{}, migration.NoModification)
	migration.MustRegister(1, &SignDocumentMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateDocumentMsg{}, migration.NoModification)
	migration.MustRegister(1, &TransferOwnershipMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

const (
	pathCreateRegistryMsg      = "cosign/create_registry"
	pathCreateDocumentMsg      = "cosign/create_document"
	pathSignDocumentMsg        = "cosign/sign_document"
	pathUpdateDocumentMsg      = "cosign/update_document"
	pathTransferOwnershipMsg   = "cosign/transfer_ownership"
	pathUpdateConfigurationMsg = "cosign/update_configuration"
)

// Messages carry only the format checks. Rules that depend on the state
// (existence, authorization, emptiness of the content) are enforced by the
// handlers, so that failures are reported in a stable order.

var _ weave.Msg = (*CreateRegistryMsg)(nil)

func (CreateRegistryMsg) Path() string {
	return pathCreateRegistryMsg
}

func (m *CreateRegistryMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

var _ weave.Msg = (*CreateDocumentMsg)(nil)

func (CreateDocumentMsg) Path() string {
	return pathCreateDocumentMsg
}

func (m *CreateDocumentMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "RegistryID", m.RegistryID.Validate())
	for i, s := range m.Signers {
		if err := s.Validate(); err != nil {
			errs = errors.AppendField(errs, "Signers", errors.Wrapf(err, "signer %d", i))
		}
	}
	return errs
}

var _ weave.Msg = (*SignDocumentMsg)(nil)

func (SignDocumentMsg) Path() string {
	return pathSignDocumentMsg
}

func (m *SignDocumentMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "RegistryID", m.RegistryID.Validate())
	return errs
}

var _ weave.Msg = (*UpdateDocumentMsg)(nil)

func (UpdateDocumentMsg) Path() string {
	return pathUpdateDocumentMsg
}

func (m *UpdateDocumentMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "RegistryID", m.RegistryID.Validate())
	return errs
}

var _ weave.Msg = (*TransferOwnershipMsg)(nil)

func (TransferOwnershipMsg) Path() string {
	return pathTransferOwnershipMsg
}

func (m *TransferOwnershipMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "RegistryID", m.RegistryID.Validate())
	errs = errors.AppendField(errs, "NewOwner", m.NewOwner.Validate())
	return errs
}

var _ weave.Msg = (*UpdateConfigurationMsg)(nil)

func (*UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate will skip any zero fields and validate the set ones.
func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		return errors.AppendField(errs, "Patch", errors.ErrEmpty)
	}
	if len(m.Patch.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", m.Patch.Owner.Validate())
	}
	return errs
}
