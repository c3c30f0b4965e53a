package infra

// circuit_breaker.go — proteção do relay SMTP.
// Relays gratuitos derrubam a conexão ou passam a recusar AUTH quando
// martelados; depois de algumas falhas seguidas o envio é cortado na hora
// (fast-fail) e só volta após um período de resfriamento, com um único envio
// de sonda. Os jobs recusados durante o corte vão para a DLQ do worker de
// e-mail e podem ser reprocessados manualmente.

import (
	"errors"
	"sync"
	"time"
)

// CBState é o estado corrente do breaker.
type CBState int

const (
	CBClosed   CBState = iota // envios passam normalmente
	CBOpen                    // cortado — toda chamada falha na hora
	CBHalfOpen                // resfriado — um envio de sonda liberado
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "fechado"
	case CBOpen:
		return "aberto"
	case CBHalfOpen:
		return "meio-aberto"
	default:
		return "desconhecido"
	}
}

// ErrCircuitOpen indica chamada recusada com o breaker aberto.
var ErrCircuitOpen = errors.New("circuito aberto: envio suspenso")

// CircuitBreakerConfig parametriza o breaker.
type CircuitBreakerConfig struct {
	FailureThreshold int           // falhas seguidas até abrir
	SuccessThreshold int           // sondas bem-sucedidas até fechar
	OpenTimeout      time.Duration // resfriamento antes da primeira sonda
}

// DefaultCBConfig é calibrado para SMTP: três falhas seguidas abrem o
// circuito, o resfriamento dura dois minutos e uma única sonda bem-sucedida
// fecha de novo.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		OpenTimeout:      2 * time.Minute,
	}
}

// CircuitBreaker implementa fechado → aberto → meio-aberto com transições
// protegidas por mutex. Uma instância por processo, compartilhada pelos
// workers de e-mail.
type CircuitBreaker struct {
	mu          sync.Mutex
	state       CBState
	falhas      int
	sondas      int
	abertoDesde time.Time
	cfg         CircuitBreakerConfig
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{state: CBClosed, cfg: cfg}
}

// State devolve o estado corrente, promovendo aberto → meio-aberto quando o
// resfriamento venceu.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.stateLocked()
}

func (cb *CircuitBreaker) stateLocked() CBState {
	if cb.state == CBOpen && time.Since(cb.abertoDesde) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.sondas = 0
	}
	return cb.state
}

// Execute roda fn sob o breaker: ErrCircuitOpen imediato quando aberto, e o
// resultado de fn alimenta as transições nos demais estados.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.stateLocked() == CBOpen {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.registrarFalha()
		return err
	}
	cb.registrarSucesso()
	return nil
}

func (cb *CircuitBreaker) registrarFalha() {
	cb.abertoDesde = time.Now()
	switch cb.state {
	case CBClosed:
		cb.falhas++
		if cb.falhas >= cb.cfg.FailureThreshold {
			cb.state = CBOpen
		}
	case CBHalfOpen:
		// Sonda falhou: novo ciclo de resfriamento.
		cb.state = CBOpen
		cb.falhas = 0
	}
}

func (cb *CircuitBreaker) registrarSucesso() {
	switch cb.state {
	case CBClosed:
		cb.falhas = 0
	case CBHalfOpen:
		cb.sondas++
		if cb.sondas >= cb.cfg.SuccessThreshold {
			cb.state = CBClosed
			cb.falhas = 0
			cb.sondas = 0
		}
	}
}
