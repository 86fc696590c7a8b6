package configloader

import "github.com/yaklabco/headertool/pkg/config"

// merge combines two configurations, with override taking precedence:
//   - Scalars: override wins when non-zero
//   - Pointer booleans: override wins when non-nil, so false can be set
//   - Slices: override replaces base when non-nil
//
// Neither input is modified.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.APIMacroPattern != "" {
		result.APIMacroPattern = override.APIMacroPattern
	}
	if override.MaxFileSize != 0 {
		result.MaxFileSize = override.MaxFileSize
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.NoContext {
		result.NoContext = true
	}

	if override.SkipGenerated != nil {
		result.SkipGenerated = config.Bool(*override.SkipGenerated)
	}
	if override.SkipVendor != nil {
		result.SkipVendor = config.Bool(*override.SkipVendor)
	}
	if override.FollowSymlinks != nil {
		result.FollowSymlinks = config.Bool(*override.FollowSymlinks)
	}
	if override.CFamilyOnly != nil {
		result.CFamilyOnly = config.Bool(*override.CFamilyOnly)
	}

	if override.Extensions != nil {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return result
}
