package io_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prx-network/relayleaf/internal/model"
	storageio "github.com/prx-network/relayleaf/internal/storage/io"
)

func TestGetOptions(t *testing.T) {
	tests := map[string]struct {
		yaml         string
		expDiscovery string
		expPartner   string
		expProxies   int
		expVerbose   bool
		expErr       bool
		expErrIs     error
	}{
		"A full options file should load correctly.": {
			yaml: `
discovery_url: https://discovery.example.com/nodes
partner_id: partner-1
proxies:
  - socks5://u:p@127.0.0.1:1080
  - http://10.0.0.1:3128
verbose: true
`,
			expDiscovery: "https://discovery.example.com/nodes",
			expPartner:   "partner-1",
			expProxies:   2,
			expVerbose:   true,
		},
		"An empty file should produce the defaults.": {
			yaml:         ``,
			expDiscovery: model.DefaultDiscoveryURL,
		},
		"A file with only a partner ID should keep the default discovery URL.": {
			yaml:         `partner_id: partner-2`,
			expDiscovery: model.DefaultDiscoveryURL,
			expPartner:   "partner-2",
		},
		"An invalid discovery URL should fail.": {
			yaml:     `discovery_url: "ftp://nope"`,
			expErr:   true,
			expErrIs: model.ErrNotValid,
		},
		"An invalid proxy should fail.": {
			yaml: `
proxies:
  - ftp://bad
`,
			expErr:   true,
			expErrIs: model.ErrInvalidProxy,
		},
		"Broken YAML should fail.": {
			yaml:   `proxies: [`,
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			fs := fstest.MapFS{
				"options.yaml": &fstest.MapFile{Data: []byte(test.yaml)},
			}

			repo := storageio.NewOptionsYAMLRepository(fs)
			opts, err := repo.GetOptions(context.Background(), "options.yaml")

			if test.expErr {
				require.Error(t, err)
				if test.expErrIs != nil {
					assert.ErrorIs(t, err, test.expErrIs)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expDiscovery, opts.DiscoveryURL())
			assert.Equal(t, test.expPartner, opts.PartnerID())
			assert.Len(t, opts.Proxies(), test.expProxies)
			assert.Equal(t, test.expVerbose, opts.Verbose())
		})
	}
}

func TestGetOptionsMissingFile(t *testing.T) {
	repo := storageio.NewOptionsYAMLRepository(fstest.MapFS{})

	_, err := repo.GetOptions(context.Background(), "missing.yaml")
	require.Error(t, err)
}
