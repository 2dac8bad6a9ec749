package goaeon

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Monitor receives progress events from the attractor engine.
// Implementations must be safe for concurrent use.
type Monitor interface {

	// ProcessStepped is called after each scheduler tick with the number of live processes.
	ProcessStepped(live int)

	// StatesDiscarded is called when ITGR prunes states (approximate vertex-color pair count).
	StatesDiscarded(count float64)

	// VariableRetired is called when ITGR proves a variable can no longer fire.
	VariableRetired()

	// PivotSearched is called once per Xie-Beerel iteration.
	PivotSearched()

	// AttractorFound is called for every recorded attractor.
	AttractorFound()
}

// NopMonitor is a Monitor that ignores all events.
var NopMonitor Monitor = nopMonitor{}

type nopMonitor struct{}

func (nopMonitor) ProcessStepped(int)      {}
func (nopMonitor) StatesDiscarded(float64) {}
func (nopMonitor) VariableRetired()        {}
func (nopMonitor) PivotSearched()          {}
func (nopMonitor) AttractorFound()         {}

// OrNop returns m, or NopMonitor if m is nil.
func OrNop(m Monitor) Monitor {
	if m == nil {
		return NopMonitor
	}
	return m
}

// AnalysisOpts specifies params for a complete attractor analysis run.
type AnalysisOpts struct {
	ActiveVariables []string      `yaml:"active_variables" validate:"dive,required"` // omit for all network variables
	MaxSymbolicSize int           `yaml:"max_symbolic_size" validate:"gte=0"`        // 0 denotes no limit
	Timeout         time.Duration `yaml:"timeout" validate:"gte=0"`                  // 0 denotes no timeout
	SkipReduction   bool          `yaml:"skip_reduction"`                            // set to skip the ITGR pre-pass
	Workers         int           `yaml:"workers" validate:"gte=1,lte=256"`          // classifier workers
	ArchivePath     string        `yaml:"archive_path"`                              // omit for no archive
}

// DefaultAnalysisOpts returns the opts used when no config file is given.
func DefaultAnalysisOpts() AnalysisOpts {
	return AnalysisOpts{
		Workers: 4,
	}
}

var optsValidate = validator.New()

// Validate checks opts for out of range values.
func (opts *AnalysisOpts) Validate() error {
	if err := optsValidate.Struct(opts); err != nil {
		return errors.Wrap(ErrInvalidInput, err.Error())
	}
	return nil
}

// LoadOpts reads YAML analysis opts from pathname over DefaultAnalysisOpts().
// A missing file yields the defaults.
func LoadOpts(pathname string) (AnalysisOpts, error) {
	opts := DefaultAnalysisOpts()
	if len(pathname) == 0 {
		return opts, nil
	}

	data, err := os.ReadFile(pathname)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, errors.Wrapf(err, "reading config %q", pathname)
	}

	if err = yaml.Unmarshal(data, &opts); err != nil {
		return opts, errors.Wrapf(ErrInvalidInput, "parsing config %q: %v", pathname, err)
	}

	return opts, opts.Validate()
}

// Canceller returns the cancellation handle implied by these opts, merged with base.
func (opts *AnalysisOpts) Canceller(base Canceller) Canceller {
	if opts.Timeout <= 0 {
		return OrNever(base)
	}
	return Either(OrNever(base), NewTimeout(opts.Timeout))
}
