package firebaseauth

// Identity данные пользователя из проверенного Firebase ID token
type Identity struct {
	UID         string
	Email       string
	Name        string
	PhoneNumber string
}
