package duckdb

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/duckbridge-labs/duckbridge/pkg/connstring"
	"github.com/duckbridge-labs/duckbridge/pkg/errs"
	"github.com/duckbridge-labs/duckbridge/pkg/options"
)

// settings holds the typed connector options the native driver consumes.
// Decoded from the validated options record using mapstructure; pointer
// fields distinguish unset from false.
type settings struct {
	AllowCommunityExtensions   *bool  `mapstructure:"allow_community_extensions"`
	AllowUnsignedExtensions    *bool  `mapstructure:"allow_unsigned_extensions"`
	AutoinstallKnownExtensions *bool  `mapstructure:"autoinstall_known_extensions"`
	AutoloadKnownExtensions    *bool  `mapstructure:"autoload_known_extensions"`
	MemoryLimit                string `mapstructure:"memory_limit"`
	Threads                    int    `mapstructure:"threads"`
	TempDirectory              string `mapstructure:"temp_directory"`
}

// decodeSettings validates the raw options record and decodes it into typed
// settings. Numbers arrive as int or float64 depending on the decoder that
// produced the record, so weak typing is enabled.
func decodeSettings(opts map[string]any) (*settings, error) {
	normalized, err := options.DuckDB().Validate(opts)
	if err != nil {
		return nil, err
	}

	var s settings
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindConfiguration, "build settings decoder", err)
	}
	if err := dec.Decode(normalized); err != nil {
		return nil, errs.Wrap(errs.KindInvalidValue, "decode settings", err)
	}
	return &s, nil
}

// dataSource builds the driver DSN: the database path with the resolved
// access mode, user agent, and settings appended as query parameters. A
// MotherDuck path already carries token parameters, so further ones join
// with '&'.
func dataSource(f connstring.Fields, s *settings) string {
	path := f.Database
	if path == "" {
		path = ":memory:"
	}

	params := url.Values{}
	if f.AccessMode != "" && f.AccessMode != "automatic" {
		params.Set("access_mode", f.AccessMode)
	}
	if f.UserAgent != "" {
		params.Set("custom_user_agent", f.UserAgent)
	}
	if s.AllowCommunityExtensions != nil {
		params.Set("allow_community_extensions", strconv.FormatBool(*s.AllowCommunityExtensions))
	}
	if s.AllowUnsignedExtensions != nil {
		params.Set("allow_unsigned_extensions", strconv.FormatBool(*s.AllowUnsignedExtensions))
	}
	if s.AutoinstallKnownExtensions != nil {
		params.Set("autoinstall_known_extensions", strconv.FormatBool(*s.AutoinstallKnownExtensions))
	}
	if s.AutoloadKnownExtensions != nil {
		params.Set("autoload_known_extensions", strconv.FormatBool(*s.AutoloadKnownExtensions))
	}
	if s.MemoryLimit != "" {
		params.Set("memory_limit", s.MemoryLimit)
	}
	if s.Threads > 0 {
		params.Set("threads", strconv.Itoa(s.Threads))
	}
	if s.TempDirectory != "" {
		params.Set("temp_directory", s.TempDirectory)
	}

	if len(params) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + params.Encode()
}
