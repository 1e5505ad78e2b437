package configloader

import (
	"slices"

	"github.com/yaklabco/goldif/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Switches (*bool): override overwrites base if override is non-nil
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.DumpFormat != "" {
		result.DumpFormat = override.DumpFormat
	}
	if override.MaxURLSize != 0 {
		result.MaxURLSize = override.MaxURLSize
	}

	result.ShowContext = mergeBool(result.ShowContext, override.ShowContext)
	result.RequireVersion = mergeBool(result.RequireVersion, override.RequireVersion)
	result.StrictRecords = mergeBool(result.StrictRecords, override.StrictRecords)
	result.ResolveURLs = mergeBool(result.ResolveURLs, override.ResolveURLs)

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}

	return result
}

func mergeBool(base, override *bool) *bool {
	if override == nil {
		return base
	}
	return config.Bool(*override)
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
