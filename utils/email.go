package utils

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

func SendWelcomeEmail(email, name string) {
	go func() {
		subject := "Bienvenue sur DigiCoop !"
		body := fmt.Sprintf(`<h2>Bienvenue sur DigiCoop, %s !</h2>
<p>Votre compte a bien été créé. Vous pouvez désormais :</p>
<ul>
<li>Gérer vos produits agricoles, services et équipements</li>
<li>Suivre vos stocks et vos promotions</li>
<li>Accéder à votre tableau de bord</li>
</ul>
<p>L'équipe DigiCoop</p>`, strings.Split(name, " ")[0])
		if err := SendEmail(email, subject, body); err != nil {
			logrus.WithError(err).WithField("email", email).Warn("failed to send welcome email")
		}
	}()
}

// SendProducerCredentialsEmail delivers the generated password to a producer
// account created by a cooperative. Delivery is best effort.
func SendProducerCredentialsEmail(email, name, cooperativeName, password string) {
	go func() {
		displayName := name
		if displayName == "" {
			displayName = "Producteur"
		}
		subject := "Votre compte producteur DigiCoop"
		body := fmt.Sprintf(`<h2>Bonjour %s,</h2>
<p>La coopérative <strong>%s</strong> vous a créé un compte producteur sur DigiCoop.</p>
<p>Vos identifiants de connexion :</p>
<ul>
<li>Email : <strong>%s</strong></li>
<li>Mot de passe temporaire : <strong>%s</strong></li>
</ul>
<p>Pensez à changer votre mot de passe lors de votre première connexion.</p>
<p>L'équipe DigiCoop</p>`, strings.Split(displayName, " ")[0], cooperativeName, email, password)
		if err := SendEmail(email, subject, body); err != nil {
			logrus.WithError(err).WithField("email", email).Warn("failed to send producer credentials email")
		}
	}()
}
