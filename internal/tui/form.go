package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/adminpanel/internal/admin"
)

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "  "
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 36
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

type field struct {
	label string
	input textinput.Model
}

// form is a vertical stack of text inputs with one focused at a time.
type form struct {
	title  string
	fields []field
	focus  int
	err    string
}

func newForm(title string, fields ...field) *form {
	f := &form{title: title, fields: fields}
	f.fields[0].input.Focus()
	return f
}

func (f *form) value(i int) string { return f.fields[i].input.Value() }

func (f *form) move(delta int) tea.Cmd {
	f.fields[f.focus].input.Blur()
	n := len(f.fields)
	f.focus = (f.focus + delta + n) % n
	return f.fields[f.focus].input.Focus()
}

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.Reset()
		f.fields[i].input.Blur()
	}
	f.focus = 0
	f.err = ""
	f.fields[0].input.Focus()
}

func (f *form) handleKey(m tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(m, keys.NextField), key.Matches(m, keys.Down):
		return f.move(1)
	case key.Matches(m, keys.PrevField), key.Matches(m, keys.Up):
		return f.move(-1)
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(m)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title) + "\n\n")
	for i, fl := range f.fields {
		label := labelStyle.Render(fl.label)
		if i == f.focus {
			label = cursorStyle.Render("› " + fl.label)
		}
		b.WriteString(label + "\n" + fl.input.View() + "\n\n")
	}
	if f.err != "" {
		b.WriteString(fieldErrStyle.Render("✗ "+f.err) + "\n")
	}
	return b.String()
}

func newClientForm() *form {
	return newForm("New client",
		field{"Full name", newInput("Ana Martin")},
		field{"Email", newInput("ana@example.com")},
		field{"City", newInput("Lyon")},
	)
}

func clientFormValue(f *form) admin.ClientForm {
	return admin.ClientForm{Name: f.value(0), Email: f.value(1), City: f.value(2)}
}

func newProductForm() *form {
	return newForm("New product",
		field{"Name", newInput("Stylo")},
		field{"Price", newInput("1.50")},
		field{"Stock", newInput("40")},
	)
}

func productFormValue(f *form) admin.ProductForm {
	return admin.ProductForm{Name: f.value(0), Price: f.value(1), Stock: f.value(2)}
}

const (
	orderFocusClient = iota
	orderFocusProduct
	orderFocusQuantity
	orderFields
)

// orderForm pairs two pickers with a quantity input.
type orderForm struct {
	clients  *picker
	products *picker
	quantity textinput.Model
	focus    int
	err      string
}

func newOrderForm() *orderForm {
	o := &orderForm{
		clients:  newPicker("Client", "Choose a client"),
		products: newPicker("Product", "Choose a product"),
		quantity: newInput("1"),
	}
	o.reset()
	return o
}

func (o *orderForm) reset() {
	o.clients.reset()
	o.products.reset()
	o.quantity.SetValue(admin.NewOrderForm().Quantity)
	o.err = ""
	o.setFocus(orderFocusClient)
}

func (o *orderForm) setFocus(i int) tea.Cmd {
	o.focus = i
	o.clients.focused = i == orderFocusClient
	o.products.focused = i == orderFocusProduct
	if i == orderFocusQuantity {
		return o.quantity.Focus()
	}
	o.quantity.Blur()
	return nil
}

func (o *orderForm) value() admin.OrderForm {
	return admin.OrderForm{
		ClientID:  o.clients.selected(),
		ProductID: o.products.selected(),
		Quantity:  o.quantity.Value(),
	}
}

func (o *orderForm) handleKey(m tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(m, keys.NextField):
		return o.setFocus((o.focus + 1) % orderFields)
	case key.Matches(m, keys.PrevField):
		return o.setFocus((o.focus + orderFields - 1) % orderFields)
	}
	switch o.focus {
	case orderFocusClient:
		o.clients.handleKey(m, keys)
	case orderFocusProduct:
		o.products.handleKey(m, keys)
	default:
		var cmd tea.Cmd
		o.quantity, cmd = o.quantity.Update(m)
		return cmd
	}
	return nil
}

func (o *orderForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New order") + "\n\n")
	b.WriteString(o.clients.view() + "\n")
	b.WriteString(o.products.view() + "\n")
	label := labelStyle.Render("Quantity")
	if o.focus == orderFocusQuantity {
		label = cursorStyle.Render("› Quantity")
	}
	b.WriteString(label + "\n" + o.quantity.View() + "\n\n")
	if o.err != "" {
		b.WriteString(fieldErrStyle.Render("✗ "+o.err) + "\n")
	}
	return b.String()
}
