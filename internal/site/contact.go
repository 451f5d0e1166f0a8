package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	ErrNoEndpoint = errors.New("contact endpoint not configured")
	ErrRejected   = errors.New("contact endpoint rejected the submission")
)

// ContactForm fields are validated in declaration order; the first failure
// is reported.
type ContactForm struct {
	Name    string `form:"name" json:"name" validate:"required"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Subject string `form:"subject" json:"subject" validate:"required"`
	Message string `form:"message" json:"message" validate:"required"`
}

var fieldMessages = map[string]string{
	"Name":    "Name is required.",
	"Email":   "Valid email is required.",
	"Subject": "Subject is required.",
	"Message": "Message is required.",
}

func (f *ContactForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
}

// Relay delivers a validated contact form somewhere.
type Relay interface {
	Submit(ctx context.Context, form ContactForm) error
}

// FormRelay posts the form as multipart data to a remote script endpoint
// that answers {"result": "success"} on acceptance.
type FormRelay struct {
	Endpoint string
	Client   *http.Client
}

func NewFormRelay(endpoint string) *FormRelay {
	return &FormRelay{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *FormRelay) Submit(ctx context.Context, form ContactForm) error {
	if r.Endpoint == "" {
		return ErrNoEndpoint
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, kv := range [][2]string{
		{"name", form.Name},
		{"email", form.Email},
		{"subject", form.Subject},
		{"message", form.Message},
	} {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post contact form: %w", err)
	}
	defer resp.Body.Close()

	var reply struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return fmt.Errorf("decode contact reply (status %d): %w", resp.StatusCode, err)
	}
	if reply.Result != "success" {
		return fmt.Errorf("%w: result %q", ErrRejected, reply.Result)
	}
	return nil
}

func (s *Server) submitContact(ctx *gin.Context) {
	var form ContactForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form submission."})
		return
	}
	form.trim()

	if err := s.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error": fieldMessages[verrs[0].StructField()],
				"field": strings.ToLower(verrs[0].StructField()),
			})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form submission."})
		return
	}

	if err := s.relay.Submit(ctx.Request.Context(), form); err != nil {
		log.Printf("[SITE] contact relay failed: %v", err)
		if errors.Is(err, ErrNoEndpoint) {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Contact form is not available right now."})
			return
		}
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Error submitting form. Please try again."})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Thank you, %s ! Your message has been sent successfully. It will be reviewed shortly.", form.Name),
	})
}
