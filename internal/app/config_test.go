package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		in      Config
		wantErr string
		want    string
	}{
		{name: "defaults output to tree", in: Config{PipelineUUID: "p", DocsPaths: []string{"."}}, want: OutputTree},
		{name: "json output", in: Config{PipelineUUID: "p", DocsPaths: []string{"."}, Output: "json"}, want: OutputJSON},
		{name: "missing uuid", in: Config{DocsPaths: []string{"."}}, wantErr: "PipelineUUID is a required"},
		{name: "missing docs", in: Config{PipelineUUID: "p"}, wantErr: "documents path"},
		{name: "bad output", in: Config{PipelineUUID: "p", DocsPaths: []string{"."}, Output: "yaml"}, wantErr: "invalid output 'yaml'"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.in)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.Output)
		})
	}
}
