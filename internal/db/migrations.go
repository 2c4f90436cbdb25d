package db

// migrations se aplican por numero de version; cada una corre una sola vez.
var migrations = map[int]string{
	1: migrationV1Profiles,
	2: migrationV2Reflections,
}

// Perfil con la carta de nacimiento ya resuelta.
const migrationV1Profiles = `
CREATE TABLE IF NOT EXISTS profiles (
	id UUID PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	mbti_type CHAR(4) NOT NULL,
	birth_date DATE NOT NULL,
	timezone TEXT NOT NULL DEFAULT 'UTC',
	birth_stem TEXT NOT NULL,
	birth_branch TEXT NOT NULL,
	birth_element TEXT NOT NULL,
	birth_polarity TEXT NOT NULL,
	year_stem TEXT NOT NULL,
	year_branch TEXT NOT NULL,
	year_animal TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Una reflexion por perfil y fecha, con la copia del mensaje de ese dia.
const migrationV2Reflections = `
CREATE TABLE IF NOT EXISTS reflections (
	id UUID PRIMARY KEY,
	profile_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	day DATE NOT NULL,
	note TEXT NOT NULL,
	day_description TEXT NOT NULL DEFAULT '',
	main_message TEXT NOT NULL DEFAULT '',
	energy_level SMALLINT NOT NULL,
	luck SMALLINT NOT NULL,
	element TEXT NOT NULL,
	polarity TEXT NOT NULL,
	best_for TEXT[] NOT NULL DEFAULT '{}',
	watch_out_for TEXT[] NOT NULL DEFAULT '{}',
	saved_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (profile_id, day)
);

CREATE INDEX IF NOT EXISTS reflections_profile_day_idx ON reflections (profile_id, day DESC);
`
