package utils

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// StoreError wraps a database or upstream failure with the code the store
// reported so callers can translate it for end users.
type StoreError struct {
	Code    string
	Message string
}

func (e *StoreError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// userErrorMessages maps store error codes and well-known upstream messages
// to user-facing text. Codes take priority over raw messages.
var userErrorMessages = map[string]string{
	// auth provider
	"User already registered": "Un compte existe déjà avec cet email. L'utilisateur doit confirmer son adresse email.",
	"invalid_email":           "Adresse email invalide.",
	"weak_password":           "Le mot de passe est trop faible.",
	"email_not_confirmed":     "Email non confirmé.",

	// postgres
	"23505": "Un producteur avec cet email existe déjà.",
	"42501": "Erreur de permissions. Vérifiez que vous êtes bien connecté en tant que coopérative.",
	"23503": "Donnée référentielle invalide. Vérifiez les informations fournies.",

	// network and session
	"Network error": "Erreur de connexion. Vérifiez votre connexion internet.",
	"JWT expired":   "Session expirée. Veuillez vous reconnecter.",

	// business rules
	"Seules les coopératives peuvent créer des producteurs": "Action non autorisée. Seules les coopératives peuvent créer des producteurs.",

	// single-row readback failures after a write
	"PGRST116": "Erreur technique lors de la création. Le producteur a peut-être été créé malgré tout.",
	"Cannot coerce the result to a single JSON object": "Erreur technique. Vérifiez que le producteur a bien été créé.",
}

// UserErrorMessage translates an error into text safe to show end users.
// Unknown errors fall back to their raw message.
func UserErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var se *StoreError
	if errors.As(err, &se) {
		if se.Code != "" {
			if msg, ok := userErrorMessages[se.Code]; ok {
				return msg
			}
			if se.Message != "" {
				return se.Message
			}
			return "Erreur système lors de la création."
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return userErrorMessages["23505"]
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return userErrorMessages["PGRST116"]
	}

	msg := err.Error()
	if translated, ok := userErrorMessages[msg]; ok {
		return translated
	}
	// duplicate key violations surface differently per driver
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed") {
		return userErrorMessages["23505"]
	}
	if msg == "" {
		return "Erreur inconnue lors de la création du producteur. Veuillez réessayer."
	}
	return msg
}

// IsRecoverableWriteError reports whether a failed create may in fact have
// persisted the row. The store sometimes rejects the post-insert readback
// while the insert itself committed, so callers should re-query by natural
// key before surfacing the failure.
func IsRecoverableWriteError(err error) bool {
	if err == nil {
		return false
	}
	var se *StoreError
	if errors.As(err, &se) && se.Code == "PGRST116" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "PGRST116") || strings.Contains(msg, "JSON")
}
