package password

import "golang.org/x/crypto/bcrypt"

// Hasher encapsula o hashing de senhas com bcrypt.
// O custo é configurável: aumentá-lo torna o hash (deliberadamente) mais
// caro de calcular, dificultando força bruta.
type Hasher struct {
	cost int
}

// NewHasher cria um Hasher com o custo informado.
// Custos fora da faixa aceita pelo bcrypt caem para o default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash gera o hash bcrypt da senha em texto puro.
// O salt é aleatório: a mesma senha produz hashes diferentes a cada chamada.
// A senha em texto puro nunca é logada.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compara a senha em texto puro com o hash armazenado.
// O bcrypt faz a comparação em tempo constante internamente.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
