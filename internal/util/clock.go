package util

import "time"

// Now devolve o instante atual em UTC. Centralizado para manter todas as
// comparações de expiração na mesma base de tempo.
func Now() time.Time {
	return time.Now().UTC()
}
