package store

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	pos INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	trade_number INTEGER NOT NULL,
	pair TEXT NOT NULL,
	strategy TEXT NOT NULL,
	pnl REAL NOT NULL,
	notes TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS deposits (
	pos INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	broker TEXT NOT NULL,
	amount REAL NOT NULL,
	notes TEXT NOT NULL,
	balance_before REAL NOT NULL,
	balance_after REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS withdrawals (
	pos INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	broker TEXT NOT NULL,
	amount REAL NOT NULL,
	notes TEXT NOT NULL,
	balance_before REAL NOT NULL,
	balance_after REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS balance (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	starting REAL NOT NULL,
	current REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`
