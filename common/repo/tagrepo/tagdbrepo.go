package tagrepo

import (
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/vashchenko/go_pair_tags/common/models"
	"github.com/vashchenko/go_pair_tags/common/periphery/pgdatabase"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type TagRepo interface {
	GetTagsByChainID(chainID string) ([]models.ContractTag, error)
	UpsertTags(chainID string, tags []models.ContractTag) error
}

type TagDBRepoDependencies struct {
	Database *pgdatabase.PgDatabase
}

func (d *TagDBRepoDependencies) validate() error {
	if d.Database == nil {
		return errors.New("tag repo dependencies database cannot be nil")
	}

	return nil
}

type tagRepo struct {
	pgDatabase *pgdatabase.PgDatabase
}

func NewDBRepo(dependencies TagDBRepoDependencies) (TagRepo, error) {
	if err := dependencies.validate(); err != nil {
		return nil, err
	}

	return &tagRepo{
		pgDatabase: dependencies.Database,
	}, nil
}

func (r *tagRepo) GetTagsByChainID(chainID string) ([]models.ContractTag, error) {
	db, err := r.pgDatabase.GetDB()
	if err != nil {
		return nil, err
	}

	query := psql.
		Select(
			models.PAIR_TAG_CONTRACT_ADDRESS,
			models.PAIR_TAG_PUBLIC_NAME_TAG,
			models.PAIR_TAG_PROJECT_NAME,
			models.PAIR_TAG_UI_WEBSITE_LINK,
			models.PAIR_TAG_PUBLIC_NOTE,
		).
		From(models.PAIR_TAGS_TABLE).
		Where(sq.Eq{models.PAIR_TAG_CHAINID: chainID})

	rows, err := query.
		RunWith(db).
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags = []models.ContractTag{}
	for rows.Next() {
		var tag models.ContractTag
		err := rows.Scan(&tag.ContractAddress, &tag.PublicNameTag, &tag.ProjectName, &tag.UIWebsiteLink, &tag.PublicNote)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (r *tagRepo) UpsertTags(chainID string, tags []models.ContractTag) error {
	if len(tags) == 0 {
		return nil
	}

	db, err := r.pgDatabase.GetDB()
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, tag := range tags {
		query := buildUpsertTagQuery(chainID, tag)

		_, err := query.RunWith(tx).Exec()
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func buildUpsertTagQuery(chainID string, tag models.ContractTag) sq.InsertBuilder {
	queryMap := map[string]any{
		models.PAIR_TAG_CONTRACT_ADDRESS: tag.ContractAddress,
		models.PAIR_TAG_PUBLIC_NAME_TAG:  tag.PublicNameTag,
		models.PAIR_TAG_PROJECT_NAME:     tag.ProjectName,
		models.PAIR_TAG_UI_WEBSITE_LINK:  tag.UIWebsiteLink,
		models.PAIR_TAG_PUBLIC_NOTE:      tag.PublicNote,
		models.PAIR_TAG_CHAINID:          chainID,
	}
	setClauses := []string{}
	for col := range queryMap {
		setClauses = append(setClauses, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	return psql.
		Insert(models.PAIR_TAGS_TABLE).
		SetMap(queryMap).
		Suffix(fmt.Sprintf(`
			ON CONFLICT (%s)
			DO UPDATE SET %s`,
			models.PAIR_TAG_CONTRACT_ADDRESS,
			strings.Join(setClauses, ", "),
		))
}
