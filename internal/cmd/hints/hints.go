// Package hints provides actionable next-step guidance after CLI commands.
package hints

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Hint represents actionable user guidance.
type Hint struct {
	Message string   // Human-readable guidance message
	Command string   // Optional command to run next
	Tags    []string // For filtering
}

// New creates a hint with only a message.
func New(message string) *Hint {
	return &Hint{Message: message}
}

// NewCommand creates a hint that suggests a command.
func NewCommand(message, command string) *Hint {
	return &Hint{Message: message, Command: command}
}

// WithTags adds tags to the hint.
func (h *Hint) WithTags(tags ...string) *Hint {
	h.Tags = append(h.Tags, tags...)
	return h
}

// HasTag checks if the hint has a specific tag.
func (h *Hint) HasTag(tag string) bool {
	return slices.Contains(h.Tags, tag)
}

// String renders the hint for a terminal.
func (h *Hint) String() string {
	parts := []string{"Hint: " + h.Message}
	if h.Command != "" {
		parts = append(parts, "   Run: "+h.Command)
	}
	return strings.Join(parts, "\n")
}

// Context describes the command that just ran.
type Context struct {
	Command      string // Command name, e.g. "grade"
	Succeeded    bool
	Err          error
	CourseID     int64
	AssignmentID int64
	Sheet        string // Grade sheet or report written by the command
	DryRun       bool
	Committed    bool
	Mismatches   int
	Flags        map[string]string // flags the user set explicitly
}

// ChangedFlags collects the flags set on the command line, so a suggested
// follow-up command can repeat them.
func ChangedFlags(fs *pflag.FlagSet) map[string]string {
	flags := make(map[string]string)
	fs.Visit(func(f *pflag.Flag) {
		flags[f.Name] = f.Value.String()
	})
	return flags
}

// repeatFlags renders flags as "--name value" pairs in name order, minus skip.
func repeatFlags(flags map[string]string, skip ...string) string {
	var b strings.Builder
	for _, name := range slices.Sorted(maps.Keys(flags)) {
		if slices.Contains(skip, name) {
			continue
		}
		fmt.Fprintf(&b, " --%s %s", name, flags[name])
	}
	return b.String()
}

// Provider generates hints for a context.
type Provider interface {
	GetHints(ctx Context) []*Hint
	Name() string
}

// ProviderFunc is an adapter to allow functions to be used as Providers.
type ProviderFunc func(Context) []*Hint

// GetHints calls the function.
func (f ProviderFunc) GetHints(ctx Context) []*Hint {
	return f(ctx)
}

// Name returns a generic name.
func (f ProviderFunc) Name() string {
	return "func"
}

type namedProvider struct {
	name string
	fn   ProviderFunc
}

func (p *namedProvider) GetHints(ctx Context) []*Hint { return p.fn(ctx) }
func (p *namedProvider) Name() string                 { return p.name }

// Registry collects providers and caps how many hints are shown.
type Registry struct {
	providers   []Provider
	MaxHints    int
	ExcludeTags []string
}

// NewRegistry creates an empty registry showing at most two hints.
func NewRegistry() *Registry {
	return &Registry{MaxHints: 2}
}

// Register adds a provider.
func (r *Registry) Register(p Provider) {
	r.providers = append(r.providers, p)
}

// RegisterFunc registers a function as a named provider.
func (r *Registry) RegisterFunc(name string, fn func(Context) []*Hint) {
	r.Register(&namedProvider{name: name, fn: fn})
}

// GetHints returns the hints of all providers in registration order.
func (r *Registry) GetHints(ctx Context) []*Hint {
	var out []*Hint
	for _, p := range r.providers {
		for _, h := range p.GetHints(ctx) {
			if !r.excluded(h) {
				out = append(out, h)
			}
		}
	}
	if r.MaxHints > 0 && len(out) > r.MaxHints {
		out = out[:r.MaxHints]
	}
	return out
}

func (r *Registry) excluded(h *Hint) bool {
	for _, tag := range r.ExcludeTags {
		if h.HasTag(tag) {
			return true
		}
	}
	return false
}

// Fprint writes hints to w, one blank line before the block.
func Fprint(w io.Writer, hints []*Hint) {
	if len(hints) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w)
	for _, h := range hints {
		_, _ = fmt.Fprintln(w, h.String())
	}
}
