package repository

import (
	"context"
	"sort"
	"time"

	"planejao/internal/domain/entities"
	"planejao/internal/infrastructure/database"
	"planejao/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type memberItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Role      string `dynamodbav:"role"`
	CreatedAt string `dynamodbav:"created_at"`
}

// MemberDynamoRepository persists Member entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI role-index: role (string), projection ALL

type MemberDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IMemberRepository = (*MemberDynamoRepository)(nil)

func NewMemberDynamoRepository(ddb *dynamodb.Client, tableName string) *MemberDynamoRepository {
	return &MemberDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *MemberDynamoRepository) Create(ctx context.Context, m entities.Member) (entities.Member, error) {
	av, err := attributevalue.MarshalMap(toMemberItem(m))
	if err != nil {
		return entities.Member{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Member{}, err
	}
	return m, nil
}

func (r *MemberDynamoRepository) GetByID(ctx context.Context, id string) (entities.Member, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Member{}, err
	}
	if len(out.Item) == 0 {
		return entities.Member{}, nil
	}

	var it memberItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Member{}, err
	}
	return fromMemberItem(it), nil
}

func (r *MemberDynamoRepository) List(ctx context.Context) ([]entities.Member, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})

	var raw []map[string]types.AttributeValue
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		raw = append(raw, out.Items...)
	}
	return decodeMembers(raw)
}

func (r *MemberDynamoRepository) ListByRole(ctx context.Context, role entities.MemberRole) ([]entities.Member, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(database.MembersRoleIndex),
		KeyConditionExpression: aws.String("#role = :role"),
		ExpressionAttributeNames: map[string]string{
			"#role": "role",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":role": &types.AttributeValueMemberS{Value: string(role)},
		},
	})

	var raw []map[string]types.AttributeValue
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		raw = append(raw, out.Items...)
	}
	return decodeMembers(raw)
}

// decodeMembers unmarshals scan results ordered by name.
func decodeMembers(raw []map[string]types.AttributeValue) ([]entities.Member, error) {
	items := make([]entities.Member, 0, len(raw))
	for _, av := range raw {
		var it memberItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		items = append(items, fromMemberItem(it))
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func toMemberItem(m entities.Member) memberItem {
	return memberItem{
		ID:        m.ID,
		Name:      m.Name,
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromMemberItem(it memberItem) entities.Member {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Member{
		ID:        it.ID,
		Name:      it.Name,
		Role:      entities.MemberRole(it.Role),
		CreatedAt: createdAt,
	}
}
