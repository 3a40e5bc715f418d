package services

import (
	"fmt"
	"time"

	"glik/config"
	"glik/models"

	"gopkg.in/gomail.v2"
)

// EmailService предоставляет методы для отправки email.
// Письма пользователям на испанском, платформа работает в Венесуэле.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
	config *config.Config
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
		config: cfg,
	}
}

// SendEmail отправляет email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %v", err)
	}

	return nil
}

// SendLeaseStatusNotification отправляет уведомление о решении по заявке
func (s *EmailService) SendLeaseStatusNotification(to string, leaseID uint, status models.LeaseStatus) error {
	var subject, headline string
	switch status {
	case models.LeaseStatusActive:
		subject = "Tu solicitud fue aprobada"
		headline = "¡Felicidades! Tu solicitud fue aprobada."
	case models.LeaseStatusRejected:
		subject = "Tu solicitud fue rechazada"
		headline = "Lamentablemente tu solicitud fue rechazada."
	default:
		subject = "Actualización de tu solicitud"
		headline = "El estado de tu solicitud cambió."
	}

	body := fmt.Sprintf(`
		<h2>%s</h2>
		<p>Solicitud #%d</p>
		<p>Fecha: %s</p>
		<p>Si tienes preguntas, contáctanos.</p>
		<p>Equipo Glik</p>
	`, headline, leaseID, time.Now().Format("02/01/2006"))

	return s.SendEmail(to, subject, body)
}

// SendPaymentReceived отправляет уведомление о подтвержденном платеже
func (s *EmailService) SendPaymentReceived(to string, amount int64, currency string) error {
	subject := "Pago recibido"
	body := fmt.Sprintf(`
		<h2>Pago recibido</h2>
		<p>Monto: %.2f %s</p>
		<p>Fecha: %s</p>
		<p>Gracias por tu pago.</p>
		<p>Equipo Glik</p>
	`, float64(amount)/100, currency, time.Now().Format("02/01/2006 15:04"))

	return s.SendEmail(to, subject, body)
}

// SendPaymentReminder отправляет напоминание о просроченном платеже
func (s *EmailService) SendPaymentReminder(to string, leaseID uint, nextPaymentDate time.Time) error {
	subject := "Recordatorio de pago"
	body := fmt.Sprintf(`
		<h2>Recordatorio de pago</h2>
		<p>Tu contrato #%d tiene un pago pendiente desde el %s.</p>
		<p>Por favor realiza tu pago lo antes posible.</p>
		<p>Equipo Glik</p>
	`, leaseID, nextPaymentDate.Format("02/01/2006"))

	return s.SendEmail(to, subject, body)
}

// SendForgotPasswordEmail отправляет письмо восстановления пароля
func (s *EmailService) SendForgotPasswordEmail(to, token string) error {
	subject := "Recuperar contraseña"

	// Создаем сообщение
	message := gomail.NewMessage()
	message.SetHeader("From", s.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", fmt.Sprintf(`
		<h2>Recuperar contraseña</h2>
		<p>Recibimos una solicitud para restablecer tu contraseña.</p>
		<p>Tu código de recuperación: <b>%s</b></p>
		<p>Si no fuiste tú, ignora este correo.</p>
		<p>Equipo Glik</p>
	`, token))

	// Отправляем письмо
	if err := s.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("ошибка при отправке письма восстановления пароля: %v", err)
	}

	return nil
}
