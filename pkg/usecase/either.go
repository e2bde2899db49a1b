package usecase

// Either holds exactly one of a Left or a Right value. Use cases answer with
// Either[error, O]: Left carries the terminal error, Right the mapped output.
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

func Left[L, R any](value L) Either[L, R] {
	return Either[L, R]{left: value}
}

func Right[L, R any](value R) Either[L, R] {
	return Either[L, R]{right: value, isRight: true}
}

func (e Either[L, R]) IsLeft() bool  { return !e.isRight }
func (e Either[L, R]) IsRight() bool { return e.isRight }

// LeftValue returns the left value; the zero value on a Right.
func (e Either[L, R]) LeftValue() L { return e.left }

// RightValue returns the right value; the zero value on a Left.
func (e Either[L, R]) RightValue() R { return e.right }

// Unwrap returns both sides, Go style: (right, left).
func (e Either[L, R]) Unwrap() (R, L) {
	return e.right, e.left
}

// Fold applies onLeft or onRight depending on the populated side.
func Fold[L, R, T any](e Either[L, R], onLeft func(L) T, onRight func(R) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}
