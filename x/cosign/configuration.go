package cosign

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
	"github.com/iov-one/weave/x"
)

func (c *Configuration) Validate() error {
	var errs error
	// Owner field is optional.
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	return errs
}

// loadConf returns the current configuration. When none was stored, a
// configuration without any limits is returned.
func loadConf(db gconf.Store) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{Metadata: &weave.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

// checkLimits ensures that the document content fits in the configured
// limits. Zero value of a limit disables it.
func (c *Configuration) checkLimits(title, description string, signers int) error {
	if c.MaxTitleLength != 0 && len(title) > int(c.MaxTitleLength) {
		return errors.Wrapf(errors.ErrInput, "title longer than %d", c.MaxTitleLength)
	}
	if c.MaxDescriptionLength != 0 && len(description) > int(c.MaxDescriptionLength) {
		return errors.Wrapf(errors.ErrInput, "description longer than %d", c.MaxDescriptionLength)
	}
	if c.MaxSigners != 0 && signers > int(c.MaxSigners) {
		return errors.Wrapf(errors.ErrInput, "more than %d signers", c.MaxSigners)
	}
	return nil
}

// NewConfigHandler returns a handler processing configuration updates.
func NewConfigHandler(auth x.Authenticator) weave.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(packageName, &conf, auth)
}
