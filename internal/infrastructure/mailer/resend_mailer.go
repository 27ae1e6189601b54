// Package mailer implementa el puerto notify.Notifier sobre Resend.
package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jbejarano/portal-casas-api/internal/application/notify"
	"github.com/jbejarano/portal-casas-api/internal/domain/entity"
	"github.com/jbejarano/portal-casas-api/pkg/logger"
)

var _ notify.Notifier = (*ResendMailer)(nil)

// ResendMailer envía los correos transaccionales vía la API de Resend.
// Envía un correo por destinatario; el primer fallo aborta el resto.
type ResendMailer struct {
	client *resend.Client
	from   string
	log    *logger.Logger
}

// NewResendMailer construye el mailer. from con formato "Nombre <correo@dominio>".
func NewResendMailer(apiKey, from string, log *logger.Logger) *ResendMailer {
	if from == "" {
		from = "Portal Casas <onboarding@resend.dev>"
	}
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
		log:    log,
	}
}

// PaymentCreated notifica el registro de un pago a los usuarios de la casa.
func (m *ResendMailer) PaymentCreated(ctx context.Context, payment *entity.Payment, recipients []*entity.User) error {
	employeeName := ""
	if payment.Employee != nil {
		employeeName = payment.Employee.FullName
	}
	subject := "Pago Registrado - " + employeeName

	for _, user := range recipients {
		html := paymentEmailHTML(payment)
		if err := m.send(ctx, user.Email, subject, html); err != nil {
			return fmt.Errorf("enviar correo de pago a %s: %w", user.Email, err)
		}
	}
	m.log.Info().Int("destinatarios", len(recipients)).Str("pago", payment.ID).
		Msg("correos de pago enviados")
	return nil
}

// ExpenseCreated notifica el registro de un gasto a los usuarios de la casa.
func (m *ResendMailer) ExpenseCreated(ctx context.Context, expense *entity.MarketExpense, recipients []*entity.User) error {
	subject := "Gasto Registrado - " + expense.Place

	for _, user := range recipients {
		html := expenseEmailHTML(expense, user)
		if err := m.send(ctx, user.Email, subject, html); err != nil {
			return fmt.Errorf("enviar correo de gasto a %s: %w", user.Email, err)
		}
	}
	m.log.Info().Int("destinatarios", len(recipients)).Str("gasto", expense.ID).
		Msg("correos de gasto enviados")
	return nil
}

func (m *ResendMailer) send(ctx context.Context, to, subject, html string) error {
	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	return err
}

// ── Plantillas HTML ───────────────────────────────────────────────────────────

const emailShell = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"><title>%s</title></head>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; line-height: 1.6; color: #2d3748; background-color: #edf2f7; margin: 0; padding: 40px 20px;">
  <div style="max-width: 560px; margin: 0 auto; background-color: white; border-radius: 16px; overflow: hidden;">
    <div style="background-color: #1a365d; color: white; padding: 40px 30px; text-align: center;">
      <h1 style="margin: 0; font-size: 22px; font-weight: 600;">%s</h1>
      <p style="margin: 8px 0 0; opacity: 0.8; font-size: 14px;">Notificación del Sistema</p>
    </div>
    <div style="padding: 30px 35px 35px;">%s</div>
    <div style="background-color: #f7fafc; padding: 25px 35px; text-align: center;">
      <p style="margin: 0; color: #a0aec0; font-size: 12px;">Mensaje automático del Sistema de Gestión de Pagos</p>
      <p style="margin: 5px 0 0; color: #a0aec0; font-size: 12px;">Por favor no responder a este correo</p>
    </div>
  </div>
</body>
</html>`

func infoRow(label, value string) string {
	return fmt.Sprintf(`<div style="padding: 14px 0; border-bottom: 1px solid #e2e8f0;">
      <div style="font-size: 12px; color: #718096; text-transform: uppercase; letter-spacing: 0.5px;">%s</div>
      <div style="font-size: 15px; color: #2d3748; font-weight: 500;">%s</div>
    </div>`, label, value)
}

func totalCard(label, amount string) string {
	return fmt.Sprintf(`<div style="background-color: #1a365d; border-radius: 14px; padding: 25px; margin-top: 25px; text-align: center;">
      <div style="color: rgba(255,255,255,0.7); font-size: 13px; text-transform: uppercase; letter-spacing: 1px; margin-bottom: 8px;">%s</div>
      <div style="color: white; font-size: 32px; font-weight: 700;">%s</div>
    </div>`, label, amount)
}

func paymentEmailHTML(payment *entity.Payment) string {
	var b strings.Builder
	b.WriteString(`<p style="font-size: 15px; color: #4a5568;">Se ha registrado un nuevo pago en el sistema:</p>`)

	if payment.Employee != nil {
		b.WriteString(infoRow("Empleada", payment.Employee.FullName))
	}
	b.WriteString(infoRow("Fecha de Pago", formatDate(payment.PaymentDate)))
	if payment.Employer != nil {
		b.WriteString(infoRow("Empleador", payment.Employer.FullName))
	}
	b.WriteString(infoRow("Salario Base", formatCurrency(payment.BaseSalary.InexactFloat64())))
	if payment.Bonuses.IsPositive() {
		b.WriteString(infoRow("Bonificaciones", formatCurrency(payment.Bonuses.InexactFloat64())))
	}
	if payment.Deductions.IsPositive() {
		b.WriteString(infoRow("Deducciones", formatCurrency(payment.Deductions.InexactFloat64())))
	}
	b.WriteString(totalCard("Total Pagado", formatCurrency(payment.TotalAmount.InexactFloat64())))
	if payment.Notes != "" {
		b.WriteString(infoRow("Notas", payment.Notes))
	}

	return fmt.Sprintf(emailShell, "Nuevo Pago Registrado", "Nuevo Pago Registrado", b.String())
}

func expenseEmailHTML(expense *entity.MarketExpense, user *entity.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<p style="font-size: 15px; color: #4a5568;">Hola <strong>%s</strong>, se ha registrado un nuevo gasto:</p>`, user.FullName)

	b.WriteString(infoRow("Lugar", expense.Place))
	if expense.ResponsibleName != "" {
		b.WriteString(infoRow("Responsable", expense.ResponsibleName))
	}
	b.WriteString(infoRow("Fecha", formatDate(expense.Date)))
	category := expense.Category
	if category == "" {
		category = "Sin categoría"
	}
	b.WriteString(infoRow("Categoría", category))
	if expense.Notes != "" {
		b.WriteString(infoRow("Notas", expense.Notes))
	}
	if expense.CreatedByName != "" {
		b.WriteString(infoRow("Registrado por", expense.CreatedByName))
	}
	b.WriteString(totalCard("Monto Total", formatCurrency(expense.Amount.InexactFloat64())))

	return fmt.Sprintf(emailShell, "Nuevo Gasto Registrado", "Nuevo Gasto Registrado", b.String())
}

// ── Formato es-CO ─────────────────────────────────────────────────────────────

var printerCO = message.NewPrinter(language.MustParse("es-CO"))

// formatCurrency formatea un monto como pesos colombianos sin decimales.
func formatCurrency(amount float64) string {
	return printerCO.Sprintf("$ %v", number.Decimal(amount, number.MaxFractionDigits(0)))
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
