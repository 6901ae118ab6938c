package tokenstorage

import "sync"

var (
	mu     sync.Mutex
	tokens = make([]string, 0)
)

func contains(slice []string, item string) bool {
	for _, element := range slice {
		if element == item {
			return true
		}
	}
	return false
}

// AddToken records a token issued by the admin login.
func AddToken(tokenArg string) {
	mu.Lock()
	defer mu.Unlock()
	tokens = append(tokens, tokenArg)
}

// CheckToken reports whether the token was issued by this process.
func CheckToken(tokenArg string) bool {
	mu.Lock()
	defer mu.Unlock()
	return contains(tokens, tokenArg)
}
