package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/hlog"

	"github.com/quantonganh/newsletter"
)

func (s *Server) subscriptionsHandler(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return &newsletter.Error{Code: newsletter.ErrInvalid, Message: "malformed form body", Op: "subscriptionsHandler", Err: err}
	}

	name, email, err := subscriptionForm(r.PostForm)
	if err != nil {
		return err
	}

	newSubscriber, err := newsletter.ParseNewSubscriber(name, email)
	if err != nil {
		return err
	}

	logger := hlog.FromRequest(r)
	logger.Info().
		Str("subscriber_email", newSubscriber.Email().String()).
		Str("subscriber_name", newSubscriber.Name().String()).
		Msg("Saving new subscriber into the database")

	ctx, cancel := context.WithTimeout(r.Context(), s.insertTimeout())
	defer cancel()

	if err := s.SubscriptionService.Insert(ctx, newSubscriber); err != nil {
		return &newsletter.Error{Code: newsletter.ErrInternal, Op: "subscriptionsHandler", Err: err}
	}

	logger.Info().Msg("New subscriber has been saved")
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusOK)

	return nil
}

// subscriptionForm extracts the name and email fields. Both keys must be present,
// an empty value is left for the validators to reject.
func subscriptionForm(form url.Values) (name, email string, err error) {
	for _, key := range []string{"name", "email"} {
		if _, ok := form[key]; !ok {
			return "", "", newsletter.Errorf(newsletter.ErrInvalid, "missing form field %q", key)
		}
	}

	return form.Get("name"), form.Get("email"), nil
}
