package delivery

import (
	"fmt"
	"strings"
	"time"

	"solana-webhook-alerts/internal/domain"
	"solana-webhook-alerts/internal/enrich"
)

// FormatAlert renders the chat message for an enriched transaction.
func FormatAlert(tx *domain.Transaction, result enrich.Result) string {
	var b strings.Builder

	b.WriteString("🔔 New transaction\n")
	b.WriteString("━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "📝 Type: %s\n", tx.Type)
	fmt.Fprintf(&b, "⏰ Time: %s\n", time.Unix(tx.Timestamp, 0).Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "🔗 Tx: https://solscan.io/tx/%s\n", tx.Signature)
	fmt.Fprintf(&b, "📄 %s", result.Text)

	if len(result.ChartLinks) > 0 {
		b.WriteString("\n📈 ")
		b.WriteString(strings.Join(result.ChartLinks, " | "))
	}

	return b.String()
}
