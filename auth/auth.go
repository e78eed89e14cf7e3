package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"invitra/db"
	"invitra/globals"
	"invitra/middleware"
	"invitra/models"
	"invitra/rdx"
	"invitra/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 5 * 24 * time.Hour

// Login checks admin credentials and issues the session cookie.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Username == "" || input.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	var admin models.Admin
	err := db.AdminsCollection.FindOne(context.TODO(), bson.M{"username": input.Username}).Decode(&admin)
	if err != nil {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	claims := &middleware.Claims{
		Username: admin.Username,
		UserID:   admin.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	if err := rdx.RdxHset("sessions", admin.UserID, tokenString); err != nil {
		log.Printf("Redis session storage failed: %v", err)
	}

	_, err = db.AdminsCollection.UpdateOne(
		context.TODO(),
		bson.M{"userid": admin.UserID},
		bson.M{"$set": bson.M{"last_login": time.Now()}},
	)
	if err != nil {
		log.Printf("Failed to record last login for %s: %v", admin.UserID, err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     globals.SessionCookieName,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
	})

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"token":  tokenString,
		"userid": admin.UserID,
	}, "Login successful", nil)
}

// Logout clears the session cookie and drops the redis session entry.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if c, err := r.Cookie(globals.SessionCookieName); err == nil && c.Value != "" {
		if claims, err := middleware.ValidateJWT(c.Value); err == nil {
			if _, err := rdx.RdxHdel("sessions", claims.UserID); err != nil {
				log.Printf("Error removing session from Redis: %v", err)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     globals.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
	})

	utils.SendResponse(w, http.StatusOK, nil, "Logged out successfully", nil)
}
