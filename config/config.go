package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config armazena todas as configurações do aplicativo GoCatalog.
// Todos os campos são carregados uma única vez no startup e tratados
// como somente-leitura pelo resto do processo.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (MongoDB)
	MongoURI      string
	MongoDatabase string
	DBTimeout     time.Duration

	// CORS
	CORSOrigin string

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Senhas (bcrypt)
	BcryptCost int
	// RequireOldPassword exige a senha atual ao trocar a senha via PUT /users.
	// Desligado por padrão para manter paridade com o comportamento histórico.
	RequireOldPassword bool

	// Colaborador externo de geração de texto (OpenAI)
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Banco de Dados (MongoDB)
		// mustGetEnv garante que a aplicação não inicie se não houver credenciais de DB
		MongoURI:      mustGetEnv("MONGODB_URI"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "gocatalog"),
		DBTimeout:     getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second, // 5s padrão

		// 3. CORS (origem do frontend)
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),

		// 4. Segurança (JWT)
		// O secret é obrigatório: não existe default permitido em produção.
		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_HOURS", 720) * time.Hour, // 30 dias padrão

		// 5. Senhas
		BcryptCost:         getIntEnv("BCRYPT_COST", bcrypt.DefaultCost),
		RequireOldPassword: getBoolEnv("REQUIRE_OLD_PASSWORD", false),

		// 6. Geração de texto (OpenAI)
		OpenAIAPIKey:  mustGetEnv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
	}

	return cfg
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getBoolEnv lê uma variável de ambiente booleana ("true"/"false").
func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Aviso: Valor de %s ('%s') não é um booleano válido. Usando padrão (%v).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
