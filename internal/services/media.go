package services

import (
	"fmt"

	"archway_backend/internal/models"
	"archway_backend/pkg/apperrors"
)

// retainMedia splits current into the references kept by an update and the
// ones it dropped. keepIDs orders the kept references; captions is parallel
// to keepIDs and overwrites the stored caption (missing entries keep the old
// one). URL and StorageID of kept references are never touched, so an
// update cannot silently move a file. An unknown id is a client error.
func retainMedia(current models.MediaList, keepIDs, captions []string) (models.MediaList, []models.MediaRef, error) {
	kept := make(models.MediaList, 0, len(keepIDs))
	seen := make(map[string]bool, len(keepIDs))

	for i, id := range keepIDs {
		ref, idx := current.FindByID(id)
		if idx < 0 {
			return nil, nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown media id %q", id))
		}
		if i < len(captions) {
			ref.Caption = captions[i]
		}
		kept = append(kept, ref)
		seen[id] = true
	}

	var removed []models.MediaRef
	for _, ref := range current {
		if !seen[ref.ID] {
			removed = append(removed, ref)
		}
	}

	return kept, removed, nil
}
