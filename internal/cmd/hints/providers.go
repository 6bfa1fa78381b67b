package hints

import (
	"fmt"

	"github.com/agentstation/gradesync/internal/lms/canvas"
	"github.com/agentstation/gradesync/pkg/errors"
)

// Default returns a registry with the gradesync providers.
func Default() *Registry {
	r := NewRegistry()
	r.RegisterFunc("errors", errorHints)
	r.RegisterFunc("commands", commandHints)
	return r
}

// ForError returns hints for a failed command.
func ForError(err error) []*Hint {
	return Default().GetHints(Context{Err: err})
}

func errorHints(ctx Context) []*Hint {
	err := ctx.Err
	if err == nil {
		return nil
	}

	var cfgErr *errors.ConfigError
	var authErr *errors.AuthenticationError
	switch {
	case errors.As(err, &authErr) && authErr.Provider == canvas.ProviderName:
		return []*Hint{NewCommand("Set a Canvas access token",
			"export CANVAS_API_KEY=your-token").WithTags("auth")}
	case errors.As(err, &authErr):
		return []*Hint{New("Set OPENAI_API_KEY, or GEMINI_API_KEY or GOOGLE_CLOUD_PROJECT with LLM_PROVIDER=gemini").WithTags("auth")}
	case errors.Is(err, errors.ErrAPIKeyInvalid):
		return []*Hint{NewCommand("The LMS rejected the token; check it with",
			"gradesync courses").WithTags("auth")}
	case errors.As(err, &cfgErr) && cfgErr.Component == canvas.ProviderName:
		return []*Hint{NewCommand("Point gradesync at your Canvas instance",
			"export CANVAS_API_URL=https://canvas.example.edu").WithTags("config")}
	case errors.IsDuplicate(err):
		return []*Hint{New("Pick a duplicate policy with --duplicates last or --duplicates first").WithTags("compare")}
	}
	return nil
}

func commandHints(ctx Context) []*Hint {
	if !ctx.Succeeded {
		return nil
	}

	switch ctx.Command {
	case "courses":
		return []*Hint{NewCommand("List a course's assignments",
			"gradesync assignments --course <id>").WithTags("next-step")}
	case "assignments":
		return []*Hint{NewCommand("Grade a discussion without touching the LMS",
			fmt.Sprintf("gradesync grade --course %d --assignment <id> --dry-run", ctx.CourseID)).WithTags("next-step")}
	case "grade":
		if ctx.Sheet == "" {
			return nil
		}
		var out []*Hint
		if ctx.DryRun {
			out = append(out, NewCommand("Grade every student",
				fmt.Sprintf("gradesync grade --course %d --assignment %d", ctx.CourseID, ctx.AssignmentID)+
					repeatFlags(ctx.Flags, "course", "assignment", "dry-run", "limit", "output", "yes", "commit")).WithTags("next-step"))
		}
		if !ctx.DryRun && !ctx.Committed {
			out = append(out, NewCommand("Check the sheet against grades already in the LMS",
				fmt.Sprintf("gradesync compare --course %d --assignment %d --local %s", ctx.CourseID, ctx.AssignmentID, ctx.Sheet)).WithTags("next-step"))
		}
		return out
	case "compare":
		if ctx.Mismatches > 0 && ctx.Sheet != "" {
			return []*Hint{New(fmt.Sprintf("Review every row in %s", ctx.Sheet)).WithTags("next-step")}
		}
	}
	return nil
}
