package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"sitelog-backend/config"
	"sitelog-backend/database"
	"sitelog-backend/internal/domain/users"
)

const (
	googleIssuer     = "https://accounts.google.com"
	oauthStateCookie = "oauth_state"
	oauthPKCECookie  = "oauth_verifier"

	// Five minutes covers the round trip to Google's consent screen.
	oauthCookieMaxAge = 300
)

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Scopes: []string{
			"openid",
			"email",
			"profile",
		},
		Endpoint: google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func GoogleStart(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}
	verifier := oauth2.GenerateVerifier()

	// Both live in HttpOnly cookies until the callback returns.
	c.SetCookie(oauthStateCookie, state, oauthCookieMaxAge, "/", "", false, true)
	c.SetCookie(oauthPKCECookie, verifier, oauthCookieMaxAge, "/", "", false, true)

	url := googleOAuthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOnline,
		oauth2.S256ChallengeOption(verifier),
	)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/google/callback
func GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		failGoogleLogin(c, "missing code/state")
		return
	}

	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || cookieState != state {
		failGoogleLogin(c, "invalid oauth state")
		return
	}
	pkceVerifier, err := c.Cookie(oauthPKCECookie)
	if err != nil || pkceVerifier == "" {
		failGoogleLogin(c, "missing pkce verifier")
		return
	}
	clearOAuthCookies(c)

	tok, err := googleOAuthConfig().Exchange(c.Request.Context(), code,
		oauth2.VerifierOption(pkceVerifier),
	)
	if err != nil {
		failGoogleLogin(c, "failed to exchange code")
		return
	}

	// Google returns an ID token (JWT) with the openid scope.
	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		failGoogleLogin(c, "missing id_token")
		return
	}

	claims, err := verifyGoogleIDToken(c.Request.Context(), rawIDToken)
	if err != nil {
		failGoogleLogin(c, err.Error())
		return
	}

	user, err := findOrCreateGoogleUser(claims)
	if err != nil {
		failGoogleLogin(c, "failed to sign in with google")
		return
	}

	tokenString, err := signSessionToken(user)
	if err != nil {
		failGoogleLogin(c, "could not create token")
		return
	}

	redirect := config.GOOGLE_FRONTEND_REDIRECT
	if redirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": tokenString})
		return
	}
	c.Redirect(http.StatusFound, redirect+"?token="+tokenString)
}

// failGoogleLogin sends the browser back to the sign-in page; the
// callback URL is not somewhere a user can act on a JSON error.
func failGoogleLogin(c *gin.Context, reason string) {
	if config.GOOGLE_FRONTEND_REDIRECT == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": reason})
		return
	}
	c.Redirect(http.StatusFound, config.APP_URL+"/signin?error="+url.QueryEscape(reason))
}

func clearOAuthCookies(c *gin.Context) {
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)
	c.SetCookie(oauthPKCECookie, "", -1, "/", "", false, true)
}

/* ---------------- helpers ---------------- */

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// The verifier caches Google's discovery document and key set. It is
// built with a background context because it outlives the request that
// first constructed it; a failed discovery fetch is retried on the
// next callback.
var (
	googleVerifierMu sync.Mutex
	googleVerifier   *oidc.IDTokenVerifier
)

func googleIDTokenVerifier() (*oidc.IDTokenVerifier, error) {
	googleVerifierMu.Lock()
	defer googleVerifierMu.Unlock()
	if googleVerifier != nil {
		return googleVerifier, nil
	}
	provider, err := oidc.NewProvider(context.Background(), googleIssuer)
	if err != nil {
		return nil, err
	}
	googleVerifier = provider.Verifier(&oidc.Config{ClientID: config.GOOGLE_CLIENT_ID})
	return googleVerifier, nil
}

func verifyGoogleIDToken(ctx context.Context, rawIDToken string) (*googleIDClaims, error) {
	verifier, err := googleIDTokenVerifier()
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	// Verify checks signature, issuer, audience and expiry.
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}
	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}
	return &claims, nil
}

func findOrCreateGoogleUser(gc *googleIDClaims) (users.User, error) {
	email := normalizeEmail(gc.Email)

	var user users.User

	// Returning users match on the stable subject id, not the email;
	// Google lets the primary address change.
	if err := database.DB.Where("google_sub = ?", gc.Sub).First(&user).Error; err == nil {
		return user, nil
	}

	// A local account with the same address gets linked on its first
	// Google login. Google vouches for the address only when
	// email_verified is set.
	if err := database.DB.Where("email = ?", email).First(&user).Error; err == nil {
		if user.GoogleSub != nil && *user.GoogleSub != gc.Sub {
			return users.User{}, errors.New("email belongs to a different google account")
		}
		if user.GoogleSub == nil {
			sub := gc.Sub
			user.GoogleSub = &sub
			if gc.EmailVerified {
				user.IsVerified = true
			}
			if err := database.DB.Save(&user).Error; err != nil {
				return users.User{}, err
			}
		}
		return user, nil
	}

	sub := gc.Sub
	user = users.User{
		Name:         firstNonEmpty(gc.GivenName, gc.Name),
		Lastname:     gc.FamilyName,
		Email:        email,
		Password:     nil,
		AuthProvider: "google",
		GoogleSub:    &sub,
		Role:         "user",
		IsVerified:   gc.EmailVerified,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return users.User{}, err
	}
	return user, nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
