package sheen

import "fmt"

// Template composes live values into a string such as a CSS mask or
// background expression. The format uses fmt verbs, one per value.
type Template struct {
	format string
	values []*Value
	args   []any
}

// Format creates a Template over values. The expression is evaluated lazily
// by String.
func Format(format string, values ...*Value) *Template {
	return &Template{
		format: format,
		values: values,
		args:   make([]any, len(values)),
	}
}

// String evaluates the template with the current value of every input.
func (t *Template) String() string {
	for i, v := range t.values {
		t.args[i] = v.Get()
	}
	return fmt.Sprintf(t.format, t.args...)
}

// Subscribe calls fn with the re-evaluated expression whenever any input
// value changes. Removing the returned subscription detaches from all inputs.
func (t *Template) Subscribe(fn func(string)) Subscription {
	subs := make([]Subscription, len(t.values))
	for i, v := range t.values {
		subs[i] = v.Subscribe(func(float64) { fn(t.String()) })
	}
	return Subscription{remove: func() {
		for i := range subs {
			subs[i].Remove()
		}
	}}
}
