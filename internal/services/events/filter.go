package eventsvc

import (
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/alastria/dome-relay/internal/ledger"
)

// celFilter wraps a compiled CEL program evaluated per event. When disabled,
// Eval always returns true.
type celFilter struct {
	prog    cel.Program
	enabled bool
}

func newCELFilter(expr string) (celFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return celFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("id", cel.IntType),
		cel.Variable("timestamp", cel.IntType),
		cel.Variable("publisherAddress", cel.StringType),
		cel.Variable("entityId", cel.StringType),
		cel.Variable("previousEntityHash", cel.StringType),
		cel.Variable("eventType", cel.StringType),
		cel.Variable("dataLocation", cel.StringType),
		cel.Variable("metadata", cel.ListType(cel.StringType)),
	)
	if err != nil {
		return celFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return celFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return celFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return celFilter{}, err
	}
	return celFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the compiled expression against an event. When disabled,
// returns true. Evaluation errors reject the event.
func (f celFilter) Eval(ev ledger.Event) bool {
	if !f.enabled {
		return true
	}
	meta := ev.RelevantMetadata
	if meta == nil {
		meta = []string{}
	}
	out, _, err := f.prog.Eval(map[string]any{
		"id":                 int64(ev.ID),
		"timestamp":          ev.Timestamp,
		"publisherAddress":   ev.PublisherAddress,
		"entityId":           ev.EntityID,
		"previousEntityHash": ev.PreviousEntityHash,
		"eventType":          ev.EventType,
		"dataLocation":       ev.DataLocation,
		"metadata":           meta,
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
