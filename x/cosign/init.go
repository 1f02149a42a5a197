package cosign

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file.
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

// FromGenesis stores the configuration and all registries declared in the
// genesis. Both are optional.
//
//	"conf": {"cosign": {"owner": "...", "max_signers": 20}},
//	"cosign": {"registries": [{"id": "...", "owner": "..."}]}
func (*Initializer) FromGenesis(opts weave.Options, params weave.GenesisParams, kv weave.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(kv, opts, packageName, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "init config")
	}

	var genesis struct {
		Registries []struct {
			ID    weave.Address `json:"id"`
			Owner weave.Address `json:"owner"`
		} `json:"registries"`
	}
	if err := opts.ReadOptions(packageName, &genesis); err != nil {
		return errors.Wrap(err, "cannot load registries")
	}

	bucket := NewRegistryBucket()
	for i, r := range genesis.Registries {
		if err := r.ID.Validate(); err != nil {
			return errors.Wrapf(err, "registry #%d id", i)
		}
		owner := r.Owner
		if len(owner) == 0 {
			owner = r.ID
		}
		switch err := bucket.One(kv, r.ID, &Registry{}); {
		case err == nil:
			return errors.Wrapf(ErrAlreadyInitialized, "registry #%d", i)
		case !errors.ErrNotFound.Is(err):
			return errors.Wrapf(err, "registry #%d", i)
		}
		reg := Registry{
			Metadata: &weave.Metadata{Schema: 1},
			Owner:    owner,
		}
		if _, err := bucket.Put(kv, r.ID, &reg); err != nil {
			return errors.Wrapf(err, "cannot store #%d registry", i)
		}
	}
	return nil
}
