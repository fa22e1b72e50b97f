package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"

	"quizladder/internal/models"
)

// EmailService sends player notifications via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. With no from address
// configured it degrades to a disabled no-op service.
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Info().Msg("email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info().Str("from", fromEmail).Str("region", awsRegion).Msg("email service enabled")
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendPrizeNotification tells the player a finished game paid out
func (s *EmailService) SendPrizeNotification(ctx context.Context, toEmail, toName string, prize int, status models.Status) error {
	if !s.enabled {
		log.Debug().Str("to", toEmail).Msg("skipping prize email, service disabled")
		return nil
	}

	var subject, headline string
	switch status {
	case models.StatusWon:
		subject = "You won the jackpot!"
		headline = "Congratulations, you climbed the whole ladder!"
	case models.StatusMoney:
		subject = "Your winnings are in"
		headline = "Smart move taking the money."
	default:
		subject = "Your game has ended"
		headline = "The game is over, but your guaranteed prize is safe."
	}

	htmlBody := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>%s</p>
<p><strong>$%d</strong> has been credited to your account balance.</p>
<p><a href="%s">Play again</a></p>
</body></html>`, toName, headline, prize, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

%s

$%d has been credited to your account balance.

Play again: %s
`, toName, headline, prize, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Info().Str("to", toEmail).Str("subject", subject).Msg("email sent")
	return nil
}
