package prime

import "github.com/google/uuid"

// newComputationID mints a correlation id for a single top-level
// Pi(x) call, attached to every log line the drivers emit and to any
// VerificationError raised by SetDoubleCheck. Grounded on
// resonancelab-psizero (request ids) and coinjoin-engine (session
// ids), both of which stamp a uuid.UUID at the start of a unit of
// work so scattered log lines can be correlated after the fact.
func newComputationID() string {
	return uuid.New().String()
}
