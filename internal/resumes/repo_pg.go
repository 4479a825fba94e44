package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Section collections live in
// JSONB columns; scalar fields get their own columns so partial indexes
// (primary-per-user) can enforce invariants.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, name, is_primary, is_public, is_archived, completeness, slug,
    full_name, name_kana, birth_date, age, phone, email, postal_code, prefecture, city, address_line, building,
    website_url, github_url, linkedin_url, self_pr,
    education, work_experience, certifications, awards, languages, skills, preferences,
    created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (
    id, user_id, name, is_primary, is_public, is_archived, completeness, slug,
    full_name, name_kana, birth_date, age, phone, email, postal_code, prefecture, city, address_line, building,
    website_url, github_url, linkedin_url, self_pr,
    education, work_experience, certifications, awards, languages, skills, preferences,
    created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8,
    $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
    $20, $21, $22, $23,
    $24, $25, $26, $27, $28, $29, $30,
    now(), now()
)`

	sections, err := marshalSections(resume)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		resume.ID,
		resume.UserID,
		resume.Name,
		resume.IsPrimary,
		resume.IsPublic,
		resume.IsArchived,
		resume.Completeness,
		nullableText(resume.Slug),
		nullableText(resume.FullName),
		nullableText(resume.NameKana),
		nullableText(resume.BirthDate),
		resume.Age,
		nullableText(resume.Phone),
		nullableText(resume.Email),
		nullableText(resume.PostalCode),
		nullableText(resume.Prefecture),
		nullableText(resume.City),
		nullableText(resume.AddressLine),
		nullableText(resume.Building),
		nullableText(resume.WebsiteURL),
		nullableText(resume.GithubURL),
		nullableText(resume.LinkedinURL),
		nullableText(resume.SelfPR),
		sections.education,
		sections.workExperience,
		sections.certifications,
		sections.awards,
		sections.languages,
		sections.skills,
		sections.preferences,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM resumes
WHERE user_id = $1 AND id = $2
LIMIT 1`, resumeColumns)

	row := r.DB.QueryRowContext(ctx, query, userID, resumeID)
	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, includeArchived bool) ([]Resume, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM resumes
WHERE user_id = $1`, resumeColumns)
	if !includeArchived {
		query += ` AND is_archived = FALSE`
	}
	query += ` ORDER BY is_primary DESC, created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, resume Resume) error {
	const query = `
UPDATE resumes
SET name = $1,
    is_public = $2,
    is_archived = $3,
    completeness = $4,
    slug = $5,
    full_name = $6,
    name_kana = $7,
    birth_date = $8,
    age = $9,
    phone = $10,
    email = $11,
    postal_code = $12,
    prefecture = $13,
    city = $14,
    address_line = $15,
    building = $16,
    website_url = $17,
    github_url = $18,
    linkedin_url = $19,
    self_pr = $20,
    education = $21,
    work_experience = $22,
    certifications = $23,
    awards = $24,
    languages = $25,
    skills = $26,
    preferences = $27,
    updated_at = now()
WHERE user_id = $28 AND id = $29`

	sections, err := marshalSections(resume)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		resume.Name,
		resume.IsPublic,
		resume.IsArchived,
		resume.Completeness,
		nullableText(resume.Slug),
		nullableText(resume.FullName),
		nullableText(resume.NameKana),
		nullableText(resume.BirthDate),
		resume.Age,
		nullableText(resume.Phone),
		nullableText(resume.Email),
		nullableText(resume.PostalCode),
		nullableText(resume.Prefecture),
		nullableText(resume.City),
		nullableText(resume.AddressLine),
		nullableText(resume.Building),
		nullableText(resume.WebsiteURL),
		nullableText(resume.GithubURL),
		nullableText(resume.LinkedinURL),
		nullableText(resume.SelfPR),
		sections.education,
		sections.workExperience,
		sections.certifications,
		sections.awards,
		sections.languages,
		sections.skills,
		sections.preferences,
		resume.UserID,
		resume.ID,
	)
	if err != nil {
		return err
	}
	updated, _ := res.RowsAffected()
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	const query = `DELETE FROM resumes WHERE user_id = $1 AND id = $2 AND is_primary = FALSE`
	res, err := r.DB.ExecContext(ctx, query, userID, resumeID)
	if err != nil {
		return err
	}
	deleted, _ := res.RowsAffected()
	if deleted == 0 {
		// Distinguish missing from primary so the handler can 409.
		var isPrimary bool
		row := r.DB.QueryRowContext(ctx,
			`SELECT is_primary FROM resumes WHERE user_id = $1 AND id = $2`, userID, resumeID)
		if err := row.Scan(&isPrimary); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if isPrimary {
			return ErrPrimaryDelete
		}
		return ErrNotFound
	}
	return nil
}

// SetPrimary clears then sets the primary flag in one transaction, so
// the partial unique index never sees two primaries.
func (r *PGRepo) SetPrimary(ctx context.Context, userID, resumeID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE resumes SET is_primary = FALSE, updated_at = now() WHERE user_id = $1 AND is_primary`, userID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE resumes SET is_primary = TRUE, updated_at = now() WHERE user_id = $1 AND id = $2`, userID, resumeID)
	if err != nil {
		return err
	}
	updated, _ := res.RowsAffected()
	if updated == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

type sectionPayloads struct {
	education      []byte
	workExperience []byte
	certifications []byte
	awards         []byte
	languages      []byte
	skills         []byte
	preferences    []byte
}

func marshalSections(resume Resume) (sectionPayloads, error) {
	var out sectionPayloads
	var err error
	if out.education, err = marshalSection(resume.Education); err != nil {
		return out, err
	}
	if out.workExperience, err = marshalSection(resume.WorkExperience); err != nil {
		return out, err
	}
	if out.certifications, err = marshalSection(resume.Certifications); err != nil {
		return out, err
	}
	if out.awards, err = marshalSection(resume.Awards); err != nil {
		return out, err
	}
	if out.languages, err = marshalSection(resume.Languages); err != nil {
		return out, err
	}
	if out.skills, err = marshalSection(resume.Skills); err != nil {
		return out, err
	}
	if out.preferences, err = json.Marshal(resume.Preferences); err != nil {
		return out, fmt.Errorf("encode preferences: %w", err)
	}
	return out, nil
}

func marshalSection[T any](section []T) ([]byte, error) {
	if section == nil {
		section = []T{}
	}
	raw, err := json.Marshal(section)
	if err != nil {
		return nil, fmt.Errorf("encode resume section: %w", err)
	}
	return raw, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var slug, fullName, nameKana, birthDate sql.NullString
	var age sql.NullInt64
	var phone, email, postalCode, prefecture, city, addressLine, building sql.NullString
	var websiteURL, githubURL, linkedinURL, selfPR sql.NullString
	var education, workExperience, certifications, awards, languages, skills, preferences []byte

	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Name,
		&resume.IsPrimary,
		&resume.IsPublic,
		&resume.IsArchived,
		&resume.Completeness,
		&slug,
		&fullName,
		&nameKana,
		&birthDate,
		&age,
		&phone,
		&email,
		&postalCode,
		&prefecture,
		&city,
		&addressLine,
		&building,
		&websiteURL,
		&githubURL,
		&linkedinURL,
		&selfPR,
		&education,
		&workExperience,
		&certifications,
		&awards,
		&languages,
		&skills,
		&preferences,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}

	resume.Slug = slug.String
	resume.FullName = fullName.String
	resume.NameKana = nameKana.String
	resume.BirthDate = birthDate.String
	resume.Age = int(age.Int64)
	resume.Phone = phone.String
	resume.Email = email.String
	resume.PostalCode = postalCode.String
	resume.Prefecture = prefecture.String
	resume.City = city.String
	resume.AddressLine = addressLine.String
	resume.Building = building.String
	resume.WebsiteURL = websiteURL.String
	resume.GithubURL = githubURL.String
	resume.LinkedinURL = linkedinURL.String
	resume.SelfPR = selfPR.String

	if err := decodeSections(&resume, education, workExperience, certifications, awards, languages, skills, preferences); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

func decodeSections(resume *Resume, education, workExperience, certifications, awards, languages, skills, preferences []byte) error {
	for _, part := range []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"education", education, &resume.Education},
		{"work experience", workExperience, &resume.WorkExperience},
		{"certifications", certifications, &resume.Certifications},
		{"awards", awards, &resume.Awards},
		{"languages", languages, &resume.Languages},
		{"skills", skills, &resume.Skills},
		{"preferences", preferences, &resume.Preferences},
	} {
		if len(part.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(part.raw, part.dst); err != nil {
			return fmt.Errorf("decode %s: %w", part.name, err)
		}
	}
	return nil
}

func nullableText(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
