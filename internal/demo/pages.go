package demo

import (
	"strconv"

	"github.com/vango-dev/dot/pkg/dom"
	"github.com/vango-dev/dot/pkg/events"
	"github.com/vango-dev/dot/pkg/router"
	. "github.com/vango-dev/dot/pkg/vdom"
)

// HomePage is the landing page.
func HomePage(Attrs) Node {
	return Div(nil,
		H2(nil, "Home"),
		P(nil, "This is a single-page application (SPA) powered by Dot."),
		P(nil, "Navigate using the links above to explore different pages and features."),
	)
}

// AboutPage lists the runtime's features.
func AboutPage(Attrs) Node {
	return Div(nil,
		H2(nil, "About"),
		P(nil, "This example demonstrates the core features of Dot:"),
		Ul(Attrs{"style": Style{"paddingLeft": "20px", "color": "var(--text-secondary)"}},
			Li(nil, "Hash-based routing for navigation"),
			Li(nil, "Event delegation for efficient event handling"),
			Li(nil, "Reactive state management with persistence"),
			Li(nil, "HTTP client for API requests"),
			Li(nil, "Component-based architecture"),
		),
	)
}

// NotFoundPage is shown for unknown routes.
func NotFoundPage(Attrs) Node {
	return Div(Attrs{"class": "not-found"},
		H2(nil, "404"),
		P(nil, "Page not found."),
		A(Attrs{"href": router.Href("/"), "class": "back-link"}, "← Back to Home"),
	)
}

// TodoDetailsPage shows the to-do named by the id parameter.
func TodoDetailsPage(s State, p router.Params) Node {
	id := p.Get("id")
	for _, t := range s.Todos {
		if strconv.Itoa(t.ID) != id {
			continue
		}
		status := "Active"
		if t.Completed {
			status = "Done"
		}
		return Div(nil,
			H2(nil, "Todo details"),
			P(nil, "ID: ", t.ID),
			P(nil, "Title: ", t.Text),
			P(nil, "Status: ", status),
			router.Link("/todos", "Back to Todos"),
		)
	}
	return Div(nil,
		H2(nil, "Todo details"),
		P(nil, "Todo not found. Load todos first from the Todos page."),
		router.Link("/todos", "Back to Todos"),
	)
}

func (a *App) todosPage() Node {
	s := a.store.Get()

	form := Form(Attrs{
		"class": "form-group",
		"on": On{"submit": func(e *events.Event) {
			e.PreventDefault()
			e.StopPropagation()
			if _, ok := a.Add(a.draft); ok {
				a.draft = ""
			}
		}},
	},
		Input(Attrs{
			"type":        "text",
			"placeholder": "Add a new todo",
			"value":       a.draft,
			"on": On{"input": func(e *events.Event) {
				a.draft = dom.FormValue(e.Target())
			}},
		}),
		Button(Attrs{"type": "submit"}, "Add"),
	)

	var list Node
	if len(s.Todos) == 0 {
		list = Div(Attrs{"class": "empty-state"}, P(nil, "No todos yet. Add one above!"))
	} else {
		list = Ul(Attrs{"class": "todo-list"}, Range(s.Todos, func(t Todo, _ int) Node {
			return a.todoItem(t)
		}))
	}

	return Div(nil,
		H2(nil, "Todos"),
		If(s.Error != "", P(Attrs{"class": "error"}, s.Error)),
		form,
		list,
	)
}

func (a *App) todoItem(t Todo) Node {
	class := "todo-item"
	toggleClass, toggleText := "success small", "Mark done"
	if t.Completed {
		class += " completed"
		toggleClass, toggleText = "secondary small", "Mark active"
	}

	return Li(Attrs{"class": class, "data-id": t.ID},
		Div(Attrs{"class": "todo-title"}, router.Link(todoPath(t.ID), t.Text)),
		Div(Attrs{"class": "todo-actions"},
			Button(Attrs{"class": toggleClass, "on": On{"click": func(e *events.Event) {
				e.PreventDefault()
				e.StopPropagation()
				a.Toggle(t.ID)
			}}}, toggleText),
			Button(Attrs{"class": "danger small", "on": On{"click": func(e *events.Event) {
				e.PreventDefault()
				e.StopPropagation()
				a.Remove(t.ID)
			}}}, "Delete"),
		),
	)
}

func todoPath(id int) string { return "/todos/" + strconv.Itoa(id) }
