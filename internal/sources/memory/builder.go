package memory

import (
	"fmt"
	"strings"

	"github.com/agentstation/icdmap/pkg/icd"
)

// Component declares a component. typ may be empty.
func (s *Source) Component(subsystem, component string, prefix icd.Prefix, typ icd.ComponentType) *Source {
	body := fmt.Sprintf("subsystem: %s\ncomponent: %s\nprefix: %s\n", subsystem, component, prefix)
	if typ != "" {
		body += fmt.Sprintf("componentType: %s\n", typ)
	}
	return s.PutYAML(subsystem, component, icd.DocComponent, body)
}

// Publish declares items of kind published by subsystem.component.
func (s *Source) Publish(subsystem, component string, kind icd.ItemKind, names ...string) *Source {
	var b strings.Builder
	fmt.Fprintf(&b, "publish:\n  %s:\n", kind.Section())
	for _, n := range names {
		fmt.Fprintf(&b, "    - name: %q\n", n)
	}
	return s.PutYAML(subsystem, component, icd.DocPublish, b.String())
}

// Subscribe declares that subsystem.component subscribes to target's item.
func (s *Source) Subscribe(subsystem, component string, kind icd.ItemKind, target icd.ComponentKey, name string) *Source {
	body := fmt.Sprintf("subscribe:\n  %s:\n    - subsystem: %q\n      component: %q\n      name: %q\n",
		kind.Section(), target.Subsystem, target.Component, name)
	return s.PutYAML(subsystem, component, icd.DocSubscribe, body)
}

// Receive declares commands accepted by subsystem.component.
func (s *Source) Receive(subsystem, component string, names ...string) *Source {
	var b strings.Builder
	b.WriteString("receive:\n")
	for _, n := range names {
		fmt.Fprintf(&b, "  - name: %q\n", n)
	}
	return s.PutYAML(subsystem, component, icd.DocCommand, b.String())
}

// Send declares that subsystem.component sends a command to target.
func (s *Source) Send(subsystem, component string, target icd.ComponentKey, name string) *Source {
	body := fmt.Sprintf("send:\n  - subsystem: %q\n    component: %q\n    name: %q\n",
		target.Subsystem, target.Component, name)
	return s.PutYAML(subsystem, component, icd.DocCommand, body)
}
