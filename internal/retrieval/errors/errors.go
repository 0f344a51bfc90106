package errors

import "errors"

var (
	ErrEmptyEmbedding = errors.New("provider returned no embedding")

	ErrEmptyCompletion = errors.New("provider returned no completion")

	ErrInvalidVectorID = errors.New("vector document has an unsupported _id type")
)
