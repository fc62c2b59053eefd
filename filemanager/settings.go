package filemanager

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Options is the typed form of the settings mapping handed to Setup
type Options struct {
	GlobalDirectory  string `mapstructure:"global-directory"`
	AssetsDirectory  string `mapstructure:"assets-directory"`
	ExtractDirectory string `mapstructure:"extract-directory"`
	CleanupExtracted bool   `mapstructure:"cleanup-extracted"`
}

// DecodeOptions converts a settings mapping into Options. Keys unknown to the
// file manager are ignored; values are converted from their string form.
func DecodeOptions(settings map[string]string) (Options, error) {
	opts := Options{AssetsDirectory: DefaultAssetsDirectory}

	input := make(map[string]interface{}, len(settings))
	for k, v := range settings {
		input[k] = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return Options{}, err
	}
	if err := decoder.Decode(input); err != nil {
		return Options{}, fmt.Errorf("invalid file manager settings: %w", err)
	}

	if opts.AssetsDirectory == "" {
		opts.AssetsDirectory = DefaultAssetsDirectory
	}
	return opts, nil
}
