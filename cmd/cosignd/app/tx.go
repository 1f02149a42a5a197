package app

import (
	"github.com/iov-one/cosign/x/cosign"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/x/sigs"
)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	err := tx.Unmarshal(bz)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	msgs := tx.messages()
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrInput, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "%d messages", len(msgs))
	}
}

// SetMsg sets the message of the transaction. Any previously set message is
// removed.
func (tx *Tx) SetMsg(msg weave.Msg) error {
	sigs := tx.Signatures
	*tx = Tx{Signatures: sigs}
	switch m := msg.(type) {
	case *cosign.CreateRegistryMsg:
		tx.CreateRegistryMsg = m
	case *cosign.CreateDocumentMsg:
		tx.CreateDocumentMsg = m
	case *cosign.SignDocumentMsg:
		tx.SignDocumentMsg = m
	case *cosign.UpdateDocumentMsg:
		tx.UpdateDocumentMsg = m
	case *cosign.TransferOwnershipMsg:
		tx.TransferOwnershipMsg = m
	case *cosign.UpdateConfigurationMsg:
		tx.UpdateConfigurationMsg = m
	case *migration.UpgradeSchemaMsg:
		tx.UpgradeSchemaMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}
