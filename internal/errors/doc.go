// Package apperrors holds the error classes shared by the calculator front
// ends and maps each class to a process exit code.
package apperrors
