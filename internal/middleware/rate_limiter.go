package middleware

// rate_limiter.go — janelas fixas por IP, contadas em memória. Dois
// limitadores sobre a mesma estrutura: um apertado só no login (força bruta
// de senha) e um folgado na API inteira. Instância única do servidor, então
// a contagem fica no processo e não no Redis.

import (
	"net/http"
	"sync"
	"time"

	"bymen/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type janela struct {
	mu       sync.Mutex
	contagem int
	fim      time.Time
}

type limitadorIP struct {
	mu      sync.Mutex
	janelas map[string]*janela
}

func novoLimitadorIP() *limitadorIP {
	return &limitadorIP{janelas: make(map[string]*janela)}
}

// permitir conta a requisição na janela corrente do IP e informa se ela cabe
// no limite, junto com o fim da janela (para o Retry-After).
func (l *limitadorIP) permitir(ip string, limite int, duracao time.Duration) (bool, time.Time) {
	l.mu.Lock()
	j, ok := l.janelas[ip]
	if !ok {
		j = &janela{}
		l.janelas[ip] = j
	}
	l.mu.Unlock()

	j.mu.Lock()
	defer j.mu.Unlock()

	agora := time.Now()
	if agora.After(j.fim) {
		j.contagem = 0
		j.fim = agora.Add(duracao)
	}
	j.contagem++
	return j.contagem <= limite, j.fim
}

// expurgar remove janelas vencidas; IPs que não voltam não podem acumular.
func (l *limitadorIP) expurgar(agora time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removidas := 0
	for ip, j := range l.janelas {
		j.mu.Lock()
		if agora.After(j.fim) {
			delete(l.janelas, ip)
			removidas++
		}
		j.mu.Unlock()
	}
	return removidas
}

var (
	limitadorLogin = novoLimitadorIP()
	limitadorAPI   = novoLimitadorIP()
)

const (
	loginLimite = 20
	loginJanela = time.Minute
)

// LoginRateLimiter segura força bruta de senha: 20 tentativas por minuto
// por IP, só na rota de login.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, _ := limitadorLogin.permitir(c.ClientIP(), loginLimite, loginJanela); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Muitas tentativas de login. Tente novamente em 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter limita a API inteira por IP dentro de uma janela fixa.
func RateLimiter(limite int, duracao time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, fim := limitadorAPI.permitir(c.ClientIP(), limite, duracao)
		if !ok {
			c.Header("Retry-After", fim.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Muitas requisições. Tente novamente em instantes."))
			return
		}
		c.Next()
	}
}

const expurgoIntervalo = 5 * time.Minute

func init() {
	go func() {
		ticker := time.NewTicker(expurgoIntervalo)
		defer ticker.Stop()
		for range ticker.C {
			agora := time.Now()
			login := limitadorLogin.expurgar(agora)
			api := limitadorAPI.expurgar(agora)
			if login > 0 || api > 0 {
				log.Debug().
					Int("janelas_login", login).
					Int("janelas_api", api).
					Msg("rate limiter: janelas vencidas removidas")
			}
		}
	}()
}
