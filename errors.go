package tween

import (
	"fmt"
	"math"
)

var posInf = math.Inf(1)

// Diagnostic messages. They are logged, never returned: misuse of the API
// leaves the tween or sequence in its previous state.
const (
	msgRecursiveCall      = "advancing a tween from its own update callback is not allowed"
	msgRecursiveTick      = "Tick called from inside a tween callback; ignored"
	msgOnCompleteIgnored  = "tween's onComplete callback was ignored."
	msgNotAlive           = "tween or sequence is not alive; check IsAlive before calling this method"
	msgCantManipulate     = "tweens and sequences inside a sequence can't be controlled directly; use the parent sequence"
	msgSequenceStarted    = "sequence has already started; its structure can't change anymore"
	msgNestTweenTwice     = "a tween can belong to only one sequence"
	msgNestSequenceTwice  = "a sequence can be nested in another sequence only once"
	msgNestSelf           = "a sequence can't be added to itself"
	msgAddDead            = "can't add a dead tween or sequence to a sequence"
	msgInfiniteInSequence = "infinite tweens (cycles == -1) can't be added to a sequence; set infinite cycles on the parent sequence instead"
	msgOnCompleteTwice    = "tween already has an onComplete callback; wrap it in a sequence and use ChainCallback for more"
	msgOnUpdateTwice      = "only one OnUpdate callback is allowed per tween"
	msgClosed             = "scheduler is closed"
	msgInvalidDelta       = "tick delta must be a finite number; tick ignored"
)

// CallbackError carries a panic recovered from a user callback.
type CallbackError struct {
	Callback string
	Value    any
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Callback, e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *CallbackError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// protect runs fn and converts a panic into a *CallbackError.
func protect(name string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CallbackError{Callback: name, Value: r}
		}
	}()
	fn()
	return nil
}
