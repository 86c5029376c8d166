package entity

import "member-pricing-service/internal/pricing"

type User struct {
	ID       int          `json:"id"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Password string       `json:"password,omitempty"`
	Role     pricing.Role `json:"role"`
}

/*
Mysql Schema:

CREATE TABLE users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(50) NOT NULL,
	email VARCHAR(50) NOT NULL,
	password VARCHAR(255) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT 'customer'
);

CREATE UNIQUE INDEX email_idx ON users(email);
*/
