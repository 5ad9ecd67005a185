package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/meunps/platform/internal/domain"
)

// ContactSource resolves the contacts an invitation blast goes to.
type ContactSource interface {
	Get(ctx context.Context, userID, id string) (*domain.Contact, error)
}

// CampaignSource resolves the campaign an invitation links to.
type CampaignSource interface {
	Get(ctx context.Context, userID, id string) (*domain.Campaign, error)
}

// Service renders and sends survey invitations.
type Service struct {
	sender    Sender
	templates *TemplateEngine
	contacts  ContactSource
	campaigns CampaignSource
	baseURL   string
}

// NewService creates a mail service. baseURL is the public survey origin,
// e.g. "https://pesquisa.meunps.com".
func NewService(sender Sender, templates *TemplateEngine, contacts ContactSource, campaigns CampaignSource, baseURL string) *Service {
	return &Service{
		sender:    sender,
		templates: templates,
		contacts:  contacts,
		campaigns: campaigns,
		baseURL:   baseURL,
	}
}

// SendTest renders the template with sample bindings and delivers one
// message to the given address.
func (s *Service) SendTest(ctx context.Context, to, subject, template string) error {
	if template == "" {
		template = DefaultInvitationTemplate
	}
	html, err := s.templates.Render(template, map[string]interface{}{
		"name":         "Cliente de Teste",
		"email":        to,
		"survey_url":   s.baseURL,
		"survey_title": "Pesquisa de teste",
	})
	if err != nil {
		return err
	}
	return s.sender.Send(ctx, Message{To: to, Subject: subject, HTML: html})
}

// RecipientResult reports the outcome for one contact of a blast.
type RecipientResult struct {
	ContactID string `json:"contact_id"`
	Email     string `json:"email"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// SendCampaign renders the invitation per contact and delivers it. A failed
// recipient does not abort the rest; each outcome is reported.
func (s *Service) SendCampaign(ctx context.Context, userID, campaignID, subject, template string, contactIDs []string) ([]RecipientResult, error) {
	c, err := s.campaigns.Get(ctx, userID, campaignID)
	if err != nil {
		return nil, err
	}
	if template == "" {
		template = DefaultInvitationTemplate
	}
	surveyURL := fmt.Sprintf("%s/survey/%s", s.baseURL, c.ID)

	results := make([]RecipientResult, 0, len(contactIDs))
	for _, id := range contactIDs {
		res := RecipientResult{ContactID: id}

		contact, err := s.contacts.Get(ctx, userID, id)
		if err != nil {
			res.Error = "contact not found"
			results = append(results, res)
			continue
		}
		res.Email = contact.Email
		if contact.Email == "" {
			res.Error = "contact has no email"
			results = append(results, res)
			continue
		}

		html, err := s.templates.Render(template, map[string]interface{}{
			"name":          contact.Name,
			"email":         contact.Email,
			"campaign_name": c.Name,
			"survey_url":    surveyURL,
			"survey_title":  c.Customization.Title,
		})
		if err != nil {
			res.Error = err.Error()
			results = append(results, res)
			continue
		}

		if err := s.sender.Send(ctx, Message{To: contact.Email, Subject: subject, HTML: html}); err != nil {
			log.Printf("[mail.Service] send to %s: %v", contact.Email, err)
			res.Error = "delivery failed"
			results = append(results, res)
			continue
		}
		res.Sent = true
		results = append(results, res)
	}
	return results, nil
}
