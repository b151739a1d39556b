package utils

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/gomail.v2"

	"github.com/luxoria/luxoria_backend/models"
)

// SendCommissionEarnedEmail notifies a broker by email that a new commission
// was recorded for them. Failures are logged only; email is a best-effort
// side effect and must never fail the sale recording.
func SendCommissionEarnedEmail(broker *models.Broker, commission *models.Commission) error {
	if broker == nil || broker.Email == "" {
		return nil
	}

	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	if smtpHost == "" {
		// SMTP not configured, skip silently
		return nil
	}
	smtpPort := 2525
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &smtpPort)
	}

	subject := "New Commission Earned"
	body := fmt.Sprintf(
		"Dear %s,\n\nA sale of $%.2f by one of your referred sellers was just recorded.\nYour commission: $%.2f (%.0f%% of the $%.2f platform fee).\n\nThe commission is pending and will appear in your next payout.\n\nBest regards,\nLuxoria",
		broker.FullName, commission.SaleAmountUSD, commission.CommissionUSD,
		commission.CommissionRate*100, commission.PlatformFeeUSD)

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", broker.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send commission email to broker %s: %v", broker.ID.Hex(), err)
		return err
	}
	return nil
}
