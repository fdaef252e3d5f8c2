package utils

import "github.com/schollz/progressbar/v3"

// Standard progress bar descriptions
const (
	DescBuilding  = "Building"
	DescFetching  = "Fetching"
	DescCompiling = "Compiling"
)

// NewProgressBar creates a consistently styled progress bar.
//
// Use -1 for unknown totals (spinner mode). Known totals show a count.
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	return progressbar.NewOptions(total, opts...)
}
