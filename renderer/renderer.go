// Package renderer turns ledger data into markdown for terminal display.
// The domain package only produces formatted amount strings; everything
// about tables and layout lives here.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/pmallet/tally"
)

//go:embed *.md
var templates embed.FS

// historyData feeds the history template.
type historyData struct {
	User string
	Rows []historyRow
}

type historyRow struct {
	Date     string
	Sender   string
	Receiver string
	Amount   string
	Fee      string
}

// History renders a user's transactions as a markdown table, oldest
// first, amounts formatted in the given currency.
func History(user string, txs []tally.Transaction, currency string) string {
	data := historyData{User: user}
	for _, tx := range txs {
		data.Rows = append(data.Rows, historyRow{
			Date:     tx.Time.Format(tally.TimeLayout),
			Sender:   tx.Sender,
			Receiver: tx.Receiver,
			Amount:   tally.M(tx.Amount, currency).String(),
			Fee:      tally.M(tx.Fee, currency).String(),
		})
	}
	return renderTemplate("history", "history.md", data)
}

// renderTemplate executes one embedded template.
func renderTemplate(name, file string, data any) string {
	content, err := templates.ReadFile(file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}
	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}
