// Package i18n negotiates the visitor's language, carries it explicitly on the
// request context, translates catalog keys, and persists the preference behind
// PreferenceStore.
package i18n
