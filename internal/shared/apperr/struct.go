package apperr

type Kind string

type AppError struct {
	Kind      Kind
	PublicMsg string            // message montrable au client
	Fields    map[string]string // erreurs de champs formulaire (optionnel)
	Err       error             // erreur interne (pour les logs)
}
