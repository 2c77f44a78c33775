// Package word manages the programming vocabulary: CRUD with duplicate
// detection, paginated listing filtered by category or difficulty, random
// picks, and the fixed sample list kept for older clients.
package word
