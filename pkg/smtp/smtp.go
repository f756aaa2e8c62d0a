package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

type ItfSmtp interface {
	SendPaymentReceipt(userEmail string, paymentCode string, amount float64) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	auth := smtpPkg.PlainAuth("", mail, password, "smtp.gmail.com")

	return &smtp{auth: auth, mail: mail}
}

func (s *smtp) SendPaymentReceipt(userEmail string, paymentCode string, amount float64) error {
	to := []string{userEmail}

	message := []byte(fmt.Sprintf("To: %s\r\nSubject: Pembayaran QRIS Berhasil\r\n\r\nPembayaran %s sebesar Rp %.2f telah kami terima. Terima kasih sudah berbelanja di WAROENGG.",
		userEmail, paymentCode, amount))

	if err := smtpPkg.SendMail("smtp.gmail.com:587", s.auth, s.mail, to, message); err != nil {
		return err
	}

	return nil
}
